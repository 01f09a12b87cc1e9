package queries

import (
	"context"
	"errors"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/pkg/guard"
)

var ErrListPaymentsQueryIsNotConstructed = errors.New(
	"ListPaymentsQuery must be created via NewListPaymentsQuery constructor",
)

// ListPaymentsQuery lists payments most recently paid first. Users may only
// read their own payments; a nil payer lists all payments for admins.
type ListPaymentsQuery struct {
	viewer Viewer
	payer  *kernel.Email

	guard guard.ConstructorGuard
}

func NewListPaymentsQuery(viewer Viewer, payer *kernel.Email) (ListPaymentsQuery, error) {
	if payer != nil {
		if err := payer.Validate(); err != nil {
			return ListPaymentsQuery{}, err
		}
	}
	return ListPaymentsQuery{viewer: viewer, payer: payer, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

type ListPaymentsQueryHandler struct {
	ledger PaymentReader
}

func NewListPaymentsQueryHandler(ledger PaymentReader) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{ledger: ledger}
}

func (h ListPaymentsQueryHandler) Handle(ctx context.Context, q ListPaymentsQuery) (iter.Seq2[*payment.Payment, error], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := q.viewer.mayRead("list payments", q.payer); err != nil {
		return nil, err
	}

	if q.payer == nil {
		return h.ledger.ListAll(ctx), nil
	}
	return h.ledger.ListByPayer(ctx, *q.payer), nil
}
