package commands

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand withdraws a parcel booking. Only a parcel that is still
// Created, has no rider and has not been paid for can be deleted, so a delete
// never orphans a payment record or a busy rider.
type DeleteParcelCommand struct {
	actor    Actor
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteParcelCommand(actor Actor, parcelID kernel.UUID) (DeleteParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return DeleteParcelCommand{}, err
	}

	return DeleteParcelCommand{actor: actor, parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

func (c DeleteParcelCommand) Actor() Actor          { return c.actor }
func (c DeleteParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

type DeleteParcelCommandHandler struct {
	parcels ParcelStore
}

func NewDeleteParcelCommandHandler(parcels ParcelStore) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{parcels: parcels}
}

// Handle checks ownership on a read, then deletes with a write that repeats
// the lifecycle check, so a payment or assignment landing in between makes
// the delete fail with parcel.ErrNotDeletable.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	current, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}
	if actor := cmd.Actor(); !actor.Role.IsAdmin() && !current.Owner().IsEqual(actor.Email) {
		return errs.NewForbiddenError("delete parcel", fmt.Sprintf("%s does not own this parcel", actor.Email))
	}
	if err = current.ValidateDeletable(); err != nil {
		return err
	}

	return h.parcels.Delete(ctx, cmd.ParcelID())
}
