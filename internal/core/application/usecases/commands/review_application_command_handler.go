package commands

import (
	"context"
	"log/slog"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
)

// ReviewApplicationResult describes what the review changed.
type ReviewApplicationResult struct {
	RiderID      kernel.UUID
	Email        kernel.Email
	Status       rider.Status
	RolePromoted bool
}

// ReviewApplicationCommandHandler runs the review saga:
//
//  1. rider store: transition the application status (the durable fact)
//  2. role store: on approval, set the applicant's role to rider
//
// Step 2 failing leaves an approved application whose owner is not a rider.
// The status is not rolled back; the handler returns the result together
// with an *errs.PartialFailureError so an operator can finish the promotion.
//
// Only admins may review. Declining never touches the role store, and a
// second review of the same application fails in step 1 with
// rider.ErrAlreadyReviewed, so the role is promoted at most once per
// approval.
//
// Example:
//
//	handler := NewReviewApplicationCommandHandler(riders, roles, logger)
//	cmd, _ := NewReviewApplicationCommand(admin, riderID, rider.Approve)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPartialFailure) {
//	    // result.Status is approved, result.RolePromoted is false
//	}
type ReviewApplicationCommandHandler struct {
	riders RiderStore
	roles  RoleStore
	logger *slog.Logger
}

func NewReviewApplicationCommandHandler(riders RiderStore, roles RoleStore, logger *slog.Logger) ReviewApplicationCommandHandler {
	return ReviewApplicationCommandHandler{
		riders: riders,
		roles:  roles,
		logger: logger.With("component", "review_application_saga"),
	}
}

func (h ReviewApplicationCommandHandler) Handle(ctx context.Context, cmd ReviewApplicationCommand) (ReviewApplicationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReviewApplicationResult{}, err
	}
	if err := cmd.Actor().requireAdmin(SagaReviewApplication); err != nil {
		return ReviewApplicationResult{}, err
	}

	application, err := h.riders.TransitionStatus(ctx, cmd.RiderID(), cmd.Action())
	if err != nil {
		return ReviewApplicationResult{}, err
	}

	result := ReviewApplicationResult{
		RiderID: application.ID(),
		Email:   application.Email(),
		Status:  application.Status(),
	}
	if application.Status() != rider.Approved {
		return result, nil
	}

	if err = h.roles.SetRole(ctx, application.Email(), user.RoleRider); err != nil {
		pf := errs.NewPartialFailureError(
			SagaReviewApplication,
			StepPromoteRole,
			[]string{StepTransitionRiderStatus},
			"application approved but applicant role was not promoted to rider",
			err,
		).WithEntity("rider_id", application.ID().String()).WithEntity("email", application.Email().String())
		return result, reportPartialFailure(ctx, h.logger, pf)
	}

	result.RolePromoted = true
	h.logger.InfoContext(ctx, "Rider application approved",
		"rider_id", application.ID().String(), "email", application.Email().String())
	return result, nil
}
