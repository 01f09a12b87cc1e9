package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/pkg/guard"
)

var ErrReviewApplicationCommandIsNotConstructed = errors.New(
	"ReviewApplicationCommand must be created via NewReviewApplicationCommand constructor",
)

// ReviewApplicationCommand approves or declines a pending rider application.
type ReviewApplicationCommand struct {
	actor   Actor
	riderID kernel.UUID
	action  rider.Action

	guard guard.ConstructorGuard
}

func NewReviewApplicationCommand(actor Actor, riderID kernel.UUID, action rider.Action) (ReviewApplicationCommand, error) {
	if _, err := action.Target(); err != nil {
		return ReviewApplicationCommand{}, err
	}
	if err := riderID.Validate(); err != nil {
		return ReviewApplicationCommand{}, err
	}

	return ReviewApplicationCommand{
		actor:   actor,
		riderID: riderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewApplicationCommand) Validate() error {
	return c.guard.Validate(ErrReviewApplicationCommandIsNotConstructed)
}

func (c ReviewApplicationCommand) Actor() Actor         { return c.actor }
func (c ReviewApplicationCommand) RiderID() kernel.UUID { return c.riderID }
func (c ReviewApplicationCommand) Action() rider.Action { return c.action }
