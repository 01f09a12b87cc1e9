package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

type DeliverParcelResult struct {
	ParcelID   kernel.UUID
	RiderID    kernel.UUID
	RiderEmail kernel.Email
}

// DeliverParcelCommandHandler runs the delivery saga, the only path that
// moves a rider from busy back to idle:
//
//  1. parcel store: read the parcel; the actor must be an admin or its rider
//  2. rider store: look up the assigned rider by email
//  3. parcel store: Assigned Rider -> Delivered (conditional)
//  4. rider store: compare-and-set work status busy -> idle
//
// Steps 1 and 2 only read, and step 3 writes nothing when it fails, so every
// failure up to step 3 leaves the stores untouched. A failure in step 4 leaves
// a delivered parcel whose rider is still busy and cannot be assigned again;
// it is reported as an *errs.PartialFailureError and step 3 is not undone.
//
// The saga holds the same per-rider lock as the assignment saga, so a rider
// is never released and booked at the same time.
//
// Example:
//
//	handler := NewDeliverParcelCommandHandler(parcels, riders, trackingLog, locker, logger)
//	cmd, _ := NewDeliverParcelCommand(actor, parcelID)
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil {
//	    // result.RiderID is idle again
//	}
type DeliverParcelCommandHandler struct {
	parcels  ParcelStore
	riders   RiderStore
	tracking TrackingLog
	locker   *services.RiderLocker
	logger   *slog.Logger
}

func NewDeliverParcelCommandHandler(
	parcels ParcelStore,
	riders RiderStore,
	trackingLog TrackingLog,
	locker *services.RiderLocker,
	logger *slog.Logger,
) DeliverParcelCommandHandler {
	return DeliverParcelCommandHandler{
		parcels:  parcels,
		riders:   riders,
		tracking: trackingLog,
		locker:   locker,
		logger:   logger.With("component", "deliver_parcel_saga"),
	}
}

func (h DeliverParcelCommandHandler) Handle(ctx context.Context, cmd DeliverParcelCommand) (DeliverParcelResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliverParcelResult{}, err
	}

	current, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return DeliverParcelResult{}, err
	}
	assignedTo := current.AssignedRider()
	if err = h.authorize(cmd.Actor(), assignedTo); err != nil {
		return DeliverParcelResult{}, err
	}
	if assignedTo == nil {
		return DeliverParcelResult{}, parcel.ErrNotAssigned
	}

	assignee, err := h.riders.FindByEmail(ctx, *assignedTo)
	if err != nil {
		return DeliverParcelResult{}, err
	}

	unlock := h.locker.Lock(assignee.ID())
	defer unlock()

	delivered, err := h.parcels.MarkDelivered(ctx, cmd.ParcelID())
	if err != nil {
		return DeliverParcelResult{}, err
	}

	if err = h.riders.SetWorkStatus(ctx, assignee.ID(), rider.Busy, rider.Idle); err != nil {
		pf := errs.NewPartialFailureError(
			SagaDeliverParcel,
			StepReleaseRider,
			[]string{StepLookupRider, StepMarkParcelDelivered},
			"parcel is delivered but its rider is still busy",
			err,
		).WithEntity("parcel_id", delivered.ID().String()).WithEntity("rider_id", assignee.ID().String())
		return DeliverParcelResult{}, reportPartialFailure(ctx, h.logger, pf)
	}

	appendTracking(ctx, h.logger, h.tracking, delivered.TrackingID(), delivered.ID(),
		tracking.StatusDelivered, "Delivered by "+assignee.Profile().Name, cmd.Actor().Email.String())

	return DeliverParcelResult{
		ParcelID:   delivered.ID(),
		RiderID:    assignee.ID(),
		RiderEmail: assignee.Email(),
	}, nil
}

// authorize lets admins deliver any parcel and riders only their own.
func (h DeliverParcelCommandHandler) authorize(actor Actor, assignedTo *kernel.Email) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	if assignedTo == nil || !assignedTo.IsEqual(actor.Email) {
		return errs.NewForbiddenError(SagaDeliverParcel,
			fmt.Sprintf("%s is not the rider assigned to this parcel", actor.Email))
	}
	return nil
}
