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

type AssignRiderResult struct {
	ParcelID   kernel.UUID
	RiderID    kernel.UUID
	RiderEmail kernel.Email
}

// AssignRiderCommandHandler runs the assignment saga:
//
//  1. rider store: look up the rider; it must be approved and idle
//  2. parcel store: Created -> Assigned Rider and record the rider's email,
//     conditional on the parcel having no rider yet
//  3. rider store: compare-and-set work status idle -> busy
//
// Step 1 and the parcel pre-read mutate nothing, and step 2 writes nothing
// when it fails, so failures up to step 2 leave the stores untouched. A
// failure in step 3 after step 2 committed leaves a parcel pointing at a
// rider that is not busy; it is reported as an *errs.PartialFailureError
// naming the step.
//
// Sagas for the same rider are serialized in-process, and step 3 is
// conditional on the rider still being idle, so a rider is never handed two
// parcels by concurrent calls. Sagas for the same parcel but different riders
// race on step 2, which only one of them wins; the losers get
// parcel.ErrAlreadyAssigned before their rider is touched.
//
// The rider is released again by DeliverParcelCommandHandler.
//
// Example:
//
//	handler := NewAssignRiderCommandHandler(parcels, riders, trackingLog, locker, logger)
//	cmd, _ := NewAssignRiderCommand(admin, parcelID, riderID)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, rider.ErrRiderBusy) {
//	    // deliver the rider's current parcel first
//	}
type AssignRiderCommandHandler struct {
	parcels  ParcelStore
	riders   RiderStore
	tracking TrackingLog
	locker   *services.RiderLocker
	logger   *slog.Logger
}

func NewAssignRiderCommandHandler(
	parcels ParcelStore,
	riders RiderStore,
	trackingLog TrackingLog,
	locker *services.RiderLocker,
	logger *slog.Logger,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		parcels:  parcels,
		riders:   riders,
		tracking: trackingLog,
		locker:   locker,
		logger:   logger.With("component", "assign_rider_saga"),
	}
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (AssignRiderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignRiderResult{}, err
	}
	if err := cmd.Actor().requireAdmin(SagaAssignRider); err != nil {
		return AssignRiderResult{}, err
	}

	unlock := h.locker.Lock(cmd.RiderID())
	defer unlock()

	assignee, err := h.riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return AssignRiderResult{}, err
	}
	if err = assignee.ValidateAssignable(); err != nil {
		return AssignRiderResult{}, err
	}

	current, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return AssignRiderResult{}, err
	}
	if current.AssignedRider() != nil {
		return AssignRiderResult{}, fmt.Errorf("%w: assigned to %s", parcel.ErrAlreadyAssigned, current.AssignedRider())
	}

	assigned, err := h.parcels.AssignRider(ctx, cmd.ParcelID(), assignee.Email())
	if err != nil {
		return AssignRiderResult{}, err
	}

	if err = h.riders.SetWorkStatus(ctx, assignee.ID(), rider.Idle, rider.Busy); err != nil {
		pf := errs.NewPartialFailureError(
			SagaAssignRider,
			StepMarkRiderBusy,
			[]string{StepLookupRider, StepAssignParcel},
			"parcel references a rider whose work status is not busy",
			err,
		).WithEntity("parcel_id", assigned.ID().String()).WithEntity("rider_id", assignee.ID().String())
		return AssignRiderResult{}, reportPartialFailure(ctx, h.logger, pf)
	}

	appendTracking(ctx, h.logger, h.tracking, assigned.TrackingID(), assigned.ID(),
		tracking.StatusRiderAssigned, "Assigned to rider "+assignee.Profile().Name, cmd.Actor().Email.String())

	return AssignRiderResult{
		ParcelID:   assigned.ID(),
		RiderID:    assignee.ID(),
		RiderEmail: assignee.Email(),
	}, nil
}
