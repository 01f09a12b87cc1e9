package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand hands a parcel to an approved, idle rider.
//
// Example:
//
//	cmd, _ := NewAssignRiderCommand(admin, parcelID, riderID)
//	result, err := handler.Handle(ctx, cmd)
//	var pf *errs.PartialFailureError
//	switch {
//	case errors.As(err, &pf):
//	    // parcel assigned but rider not marked busy, see pf.FailedStep
//	case err != nil:
//	    // nothing was changed
//	}
type AssignRiderCommand struct {
	actor    Actor
	parcelID kernel.UUID
	riderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(actor Actor, parcelID, riderID kernel.UUID) (AssignRiderCommand, error) {
	if err := errors.Join(parcelID.Validate(), riderID.Validate()); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		actor:    actor,
		parcelID: parcelID,
		riderID:  riderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) Actor() Actor          { return c.actor }
func (c AssignRiderCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AssignRiderCommand) RiderID() kernel.UUID  { return c.riderID }
