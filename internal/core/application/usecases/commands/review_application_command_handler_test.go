package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewApplicationCommandHandler_Handle_ApprovePromotesRole(t *testing.T) {
	ctx := t.Context()
	pending := newTestRider(t, "a@x.com", rider.Pending, rider.Idle)
	approved, err := rider.RestoreRider(pending.ID(), pending.Email(), pending.Profile(), rider.Approved, rider.Idle, time.Now())
	require.NoError(t, err)

	riders := new(MockRiderStore)
	roles := new(MockUserStore)
	mock.InOrder(
		riders.On("TransitionStatus", ctx, pending.ID(), rider.Approve).Return(approved, nil).Once(),
		roles.On("SetRole", ctx, pending.Email(), user.RoleRider).Return(nil).Once(),
	)

	cmd, err := commands.NewReviewApplicationCommand(adminActor(t), pending.ID(), rider.Approve)
	require.NoError(t, err)

	handler := commands.NewReviewApplicationCommandHandler(riders, roles, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, rider.Approved, result.Status)
	assert.True(t, result.RolePromoted)
	assert.Equal(t, pending.Email(), result.Email)
	riders.AssertExpectations(t)
	roles.AssertExpectations(t)
}

func TestReviewApplicationCommandHandler_Handle_DeclineLeavesRoleAlone(t *testing.T) {
	ctx := t.Context()
	declined := newTestRider(t, "a@x.com", rider.Declined, rider.Idle)

	riders := new(MockRiderStore)
	roles := new(MockUserStore)
	riders.On("TransitionStatus", ctx, declined.ID(), rider.Decline).Return(declined, nil).Once()

	cmd, err := commands.NewReviewApplicationCommand(adminActor(t), declined.ID(), rider.Decline)
	require.NoError(t, err)

	result, err := commands.NewReviewApplicationCommandHandler(riders, roles, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, rider.Declined, result.Status)
	assert.False(t, result.RolePromoted)
	roles.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewApplicationCommandHandler_Handle_NonAdminIsForbidden(t *testing.T) {
	for _, role := range []user.Role{user.RoleUser, user.RoleRider} {
		t.Run(role.String(), func(t *testing.T) {
			riders := new(MockRiderStore)
			roles := new(MockUserStore)

			target := newTestRider(t, "a@x.com", rider.Pending, rider.Idle)
			cmd, err := commands.NewReviewApplicationCommand(actor(t, "someone@x.com", role), target.ID(), rider.Approve)
			require.NoError(t, err)

			_, err = commands.NewReviewApplicationCommandHandler(riders, roles, discardLogger()).Handle(t.Context(), cmd)

			require.ErrorIs(t, err, errs.ErrForbidden)
			riders.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
			roles.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReviewApplicationCommandHandler_Handle_AlreadyReviewed(t *testing.T) {
	ctx := t.Context()
	target := newTestRider(t, "a@x.com", rider.Approved, rider.Idle)

	riders := new(MockRiderStore)
	roles := new(MockUserStore)
	riders.On("TransitionStatus", ctx, target.ID(), rider.Approve).Return(nil, rider.ErrAlreadyReviewed).Once()

	cmd, err := commands.NewReviewApplicationCommand(adminActor(t), target.ID(), rider.Approve)
	require.NoError(t, err)

	_, err = commands.NewReviewApplicationCommandHandler(riders, roles, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, rider.ErrAlreadyReviewed)
	require.ErrorIs(t, err, errs.ErrConflict)
	roles.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewApplicationCommandHandler_Handle_PromotionFailureIsPartial(t *testing.T) {
	ctx := t.Context()
	approved := newTestRider(t, "a@x.com", rider.Approved, rider.Idle)
	storeErr := errors.New("connection reset")

	riders := new(MockRiderStore)
	roles := new(MockUserStore)
	mock.InOrder(
		riders.On("TransitionStatus", ctx, approved.ID(), rider.Approve).Return(approved, nil).Once(),
		roles.On("SetRole", ctx, approved.Email(), user.RoleRider).Return(storeErr).Once(),
	)

	cmd, err := commands.NewReviewApplicationCommand(adminActor(t), approved.ID(), rider.Approve)
	require.NoError(t, err)

	result, err := commands.NewReviewApplicationCommandHandler(riders, roles, discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartialFailure)
	require.ErrorIs(t, err, storeErr)

	var pf *errs.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, commands.SagaReviewApplication, pf.Saga)
	assert.Equal(t, commands.StepPromoteRole, pf.FailedStep)
	assert.Equal(t, []string{commands.StepTransitionRiderStatus}, pf.CompletedSteps)
	assert.Equal(t, approved.ID().String(), pf.EntityIDs["rider_id"])

	assert.Equal(t, rider.Approved, result.Status)
	assert.False(t, result.RolePromoted)
}
