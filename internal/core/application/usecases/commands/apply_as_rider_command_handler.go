package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
)

// ApplyAsRiderCommandHandler stores a new pending application. It touches a
// single store, so there is no saga: the store's Apply is the whole
// operation and enforces one active application per email.
type ApplyAsRiderCommandHandler struct {
	riders RiderStore
}

func NewApplyAsRiderCommandHandler(riders RiderStore) ApplyAsRiderCommandHandler {
	return ApplyAsRiderCommandHandler{riders: riders}
}

// Handle returns the ID of the created application, or rider.ErrAlreadyApplied.
func (h ApplyAsRiderCommandHandler) Handle(ctx context.Context, cmd ApplyAsRiderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	application, err := rider.NewRider(kernel.NewUUID(), cmd.Email(), cmd.Profile(), time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.riders.Apply(ctx, application); err != nil {
		return kernel.UUID{}, err
	}

	return application.ID(), nil
}
