package commands

import (
	"errors"
	"fmt"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records a completed payment for a parcel. The payer is
// always the authenticated caller.
type RecordPaymentCommand struct {
	actor         Actor
	parcelID      kernel.UUID
	amount        int64
	method        string
	transactionID string

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	actor Actor,
	parcelID kernel.UUID,
	amount int64,
	method, transactionID string,
) (RecordPaymentCommand, error) {
	var amountErr, txErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	if strings.TrimSpace(transactionID) == "" {
		txErr = errs.NewValueIsRequiredError("transactionId")
	}
	if err := errors.Join(parcelID.Validate(), actor.Email.Validate(), amountErr, txErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		actor:         actor,
		parcelID:      parcelID,
		amount:        amount,
		method:        method,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) Actor() Actor          { return c.actor }
func (c RecordPaymentCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c RecordPaymentCommand) Amount() int64         { return c.amount }
func (c RecordPaymentCommand) Method() string        { return c.method }
func (c RecordPaymentCommand) TransactionID() string { return c.transactionID }
