package commands

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/pkg/errs"
)

// Saga names and step names as they appear in partial-failure reports.
const (
	SagaReviewApplication = "review rider application"
	SagaAssignRider       = "assign rider"
	SagaRecordPayment     = "record payment"
	SagaDeliverParcel     = "deliver parcel"

	StepTransitionRiderStatus = "transition rider status"
	StepPromoteRole           = "promote role to rider"
	StepLookupRider           = "look up rider"
	StepAssignParcel          = "assign parcel to rider"
	StepMarkRiderBusy         = "mark rider busy"
	StepMarkParcelPaid        = "mark parcel paid"
	StepAppendPayment         = "append payment record"
	StepMarkParcelDelivered   = "mark parcel delivered"
	StepReleaseRider          = "release rider"
)

// reportPartialFailure logs the inconsistency for operators and returns the
// error the caller receives.
func reportPartialFailure(ctx context.Context, logger *slog.Logger, pf *errs.PartialFailureError) error {
	attrs := []any{
		"saga", pf.Saga,
		"failed_step", pf.FailedStep,
		"completed_steps", pf.CompletedSteps,
		"inconsistency", pf.Inconsistency,
		"error", pf.Cause,
	}
	for name, id := range pf.EntityIDs {
		attrs = append(attrs, name, id)
	}
	logger.ErrorContext(ctx, "Saga partially applied, manual reconciliation required", attrs...)
	return pf
}

// appendTracking writes a tracking entry after a saga's durable steps.
// Tracking is history only, so a failure here is logged and swallowed.
func appendTracking(
	ctx context.Context,
	logger *slog.Logger,
	trackingLog TrackingLog,
	trackingID string,
	parcelID kernel.UUID,
	status, message, updatedBy string,
) {
	if trackingLog == nil {
		return
	}

	entry, err := tracking.NewEntry(kernel.NewUUID(), trackingID, &parcelID, status, message, updatedBy, time.Now().UTC())
	if err == nil {
		err = trackingLog.Append(ctx, entry)
	}
	if err != nil {
		logger.WarnContext(ctx, "Failed to append tracking entry",
			"parcel_id", parcelID.String(), "status", status, "error", err)
	}
}
