package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand books a parcel for the caller. cost is in minor units.
type CreateParcelCommand struct {
	owner   kernel.Email
	details parcel.Details
	cost    int64

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(owner kernel.Email, details parcel.Details, cost int64) (CreateParcelCommand, error) {
	var costErr error
	if cost < 0 {
		costErr = errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("%d is negative", cost))
	}
	if err := errors.Join(owner.Validate(), costErr); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{owner: owner, details: details, cost: cost, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

type CreateParcelCommandHandler struct {
	parcels ParcelStore
}

func NewCreateParcelCommandHandler(parcels ParcelStore) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{parcels: parcels}
}

// Handle returns the stored parcel, unpaid and in Created status.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(kernel.NewUUID(), cmd.owner, cmd.details, cmd.cost, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = h.parcels.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
