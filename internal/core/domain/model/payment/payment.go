// Package payment models the append-only payment ledger record written when
// a parcel is paid for.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// DefaultMethod is recorded when the client does not say how it paid.
const DefaultMethod = "card"

// Payment is immutable once created; there is exactly one per paid parcel.
type Payment struct {
	id            kernel.UUID
	parcelID      kernel.UUID
	payer         kernel.Email
	amount        int64
	method        string
	transactionID string
	createdAt     time.Time
	paidAt        time.Time

	isConstructed bool
}

// NewPayment builds a payment record for a parcel that has just been marked
// paid. amount is in minor currency units.
func NewPayment(
	id, parcelID kernel.UUID,
	payer kernel.Email,
	amount int64,
	method, transactionID string,
	paidAt time.Time,
) (*Payment, error) {
	if strings.TrimSpace(method) == "" {
		method = DefaultMethod
	}
	return RestorePayment(id, parcelID, payer, amount, method, transactionID, paidAt, paidAt)
}

func RestorePayment(
	id, parcelID kernel.UUID,
	payer kernel.Email,
	amount int64,
	method, transactionID string,
	createdAt, paidAt time.Time,
) (*Payment, error) {
	var amountErr, txErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	if strings.TrimSpace(transactionID) == "" {
		txErr = errs.NewValueIsRequiredError("transactionId")
	}

	if err := errors.Join(id.Validate(), parcelID.Validate(), payer.Validate(), amountErr, txErr); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		parcelID:      parcelID,
		payer:         payer,
		amount:        amount,
		method:        method,
		transactionID: transactionID,
		createdAt:     createdAt,
		paidAt:        paidAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID       { return p.id }
func (p *Payment) ParcelID() kernel.UUID { return p.parcelID }
func (p *Payment) Payer() kernel.Email   { return p.payer }
func (p *Payment) Amount() int64         { return p.amount }
func (p *Payment) Method() string        { return p.method }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) PaidAt() time.Time     { return p.paidAt }

// Intent is a payment intent created at the processor. Only the client
// secret leaves this service; the browser completes the payment with it.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}
