package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/pkg/guard"
)

var ErrApplyAsRiderCommandIsNotConstructed = errors.New(
	"ApplyAsRiderCommand must be created via NewApplyAsRiderCommand constructor",
)

// ApplyAsRiderCommand submits a rider application for the applicant's email.
//
// Example:
//
//	cmd, err := NewApplyAsRiderCommand(actor.Email, rider.Profile{Name: "Ayesha", Region: "Dhaka"})
//	if err != nil {
//	    return err
//	}
//	riderID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, rider.ErrAlreadyApplied) {
//	    // a pending or approved application already exists
//	}
type ApplyAsRiderCommand struct {
	email   kernel.Email
	profile rider.Profile

	guard guard.ConstructorGuard
}

func NewApplyAsRiderCommand(email kernel.Email, profile rider.Profile) (ApplyAsRiderCommand, error) {
	if err := email.Validate(); err != nil {
		return ApplyAsRiderCommand{}, err
	}

	return ApplyAsRiderCommand{
		email:   email,
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyAsRiderCommand) Validate() error {
	return c.guard.Validate(ErrApplyAsRiderCommandIsNotConstructed)
}

func (c ApplyAsRiderCommand) Email() kernel.Email    { return c.email }
func (c ApplyAsRiderCommand) Profile() rider.Profile { return c.profile }
