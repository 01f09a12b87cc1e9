package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrDeliverParcelCommandIsNotConstructed = errors.New(
	"DeliverParcelCommand must be created via NewDeliverParcelCommand constructor",
)

// DeliverParcelCommand completes the delivery of an assigned parcel and frees
// its rider for the next assignment. The actor must be an admin or the rider
// the parcel is assigned to.
//
// Example:
//
//	cmd, _ := NewDeliverParcelCommand(riderActor, parcelID)
//	result, err := handler.Handle(ctx, cmd)
//	var pf *errs.PartialFailureError
//	switch {
//	case errors.As(err, &pf):
//	    // parcel delivered but rider still busy, see pf.FailedStep
//	case errors.Is(err, parcel.ErrNotAssigned):
//	    // nothing to deliver, nothing was changed
//	}
type DeliverParcelCommand struct {
	actor    Actor
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverParcelCommand(actor Actor, parcelID kernel.UUID) (DeliverParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return DeliverParcelCommand{}, err
	}

	return DeliverParcelCommand{
		actor:    actor,
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeliverParcelCommandIsNotConstructed)
}

func (c DeliverParcelCommand) Actor() Actor          { return c.actor }
func (c DeliverParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
