package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/payment"
	"parcels/internal/pkg/errs"
)

// CreatePaymentIntentCommandHandler delegates to the payment processor. It
// has no store side effects.
type CreatePaymentIntentCommandHandler struct {
	processor PaymentProcessor
	currency  string
}

func NewCreatePaymentIntentCommandHandler(processor PaymentProcessor, currency string) CreatePaymentIntentCommandHandler {
	return CreatePaymentIntentCommandHandler{processor: processor, currency: currency}
}

// Handle returns the created intent. Every processor failure comes back as an
// *errs.PaymentProcessorError.
func (h CreatePaymentIntentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentIntentCommand) (payment.Intent, error) {
	if err := cmd.Validate(); err != nil {
		return payment.Intent{}, err
	}

	intent, err := h.processor.CreateIntent(ctx, cmd.Amount(), h.currency)
	if err != nil {
		var ppe *errs.PaymentProcessorError
		if errors.As(err, &ppe) {
			return payment.Intent{}, ppe
		}
		return payment.Intent{}, errs.NewPaymentProcessorError(err.Error(), "", err)
	}

	return intent, nil
}
