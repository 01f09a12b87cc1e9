package commands

import (
	"errors"
	"fmt"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrCreatePaymentIntentCommandIsNotConstructed = errors.New(
	"CreatePaymentIntentCommand must be created via NewCreatePaymentIntentCommand constructor",
)

// CreatePaymentIntentCommand asks the processor for a payment intent of
// amount minor units.
type CreatePaymentIntentCommand struct {
	amount int64

	guard guard.ConstructorGuard
}

func NewCreatePaymentIntentCommand(amount int64) (CreatePaymentIntentCommand, error) {
	if amount <= 0 {
		return CreatePaymentIntentCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"amountInCents", fmt.Errorf("%d is not greater than 0", amount))
	}

	return CreatePaymentIntentCommand{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c CreatePaymentIntentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentIntentCommandIsNotConstructed)
}

func (c CreatePaymentIntentCommand) Amount() int64 { return c.amount }
