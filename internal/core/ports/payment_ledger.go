package ports

import (
	"context"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/payment"
)

// PaymentLedger is append-only: records are never updated or deleted.
type PaymentLedger interface {
	Append(ctx context.Context, p *payment.Payment) error

	// ListByPayer yields payments made by email, most recently paid first.
	ListByPayer(ctx context.Context, payer kernel.Email) iter.Seq2[*payment.Payment, error]

	// ListAll yields every payment, most recently paid first.
	ListAll(ctx context.Context) iter.Seq2[*payment.Payment, error]
}

// PaymentProcessor creates externally hosted payment intents. Failures are
// returned as *errs.PaymentProcessorError carrying the processor's message.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (payment.Intent, error)
}
