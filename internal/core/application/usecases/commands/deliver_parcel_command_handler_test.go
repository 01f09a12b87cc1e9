package commands_test

import (
	"errors"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveredCopy(t *testing.T, p *parcel.Parcel) *parcel.Parcel {
	t.Helper()
	c, err := parcel.RestoreParcel(p.ID(), p.TrackingID(), p.Owner(), p.Details(), p.Cost(),
		parcel.Delivered, p.AssignedRider(), p.PaymentStatus(), p.CreatedAt())
	require.NoError(t, err)
	return c
}

func newDeliverHandler(parcels commands.ParcelStore, riders commands.RiderStore, trackingLog commands.TrackingLog) commands.DeliverParcelCommandHandler {
	return commands.NewDeliverParcelCommandHandler(parcels, riders, trackingLog, services.NewRiderLocker(), discardLogger())
}

func TestDeliverParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	assignee := newTestRider(t, "a@x.com", rider.Approved, rider.Busy)
	assigned := assignedCopy(t, newTestParcel(t, "b@x.com"), assignee.Email())

	parcels := new(MockParcelStore)
	riders := new(MockRiderStore)
	trackingLog := new(MockTrackingLog)
	mock.InOrder(
		parcels.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once(),
		riders.On("FindByEmail", ctx, assignee.Email()).Return(assignee, nil).Once(),
		parcels.On("MarkDelivered", ctx, assigned.ID()).Return(deliveredCopy(t, assigned), nil).Once(),
		riders.On("SetWorkStatus", ctx, assignee.ID(), rider.Busy, rider.Idle).Return(nil).Once(),
		trackingLog.On("Append", ctx, mock.MatchedBy(func(e *tracking.Entry) bool {
			return e.Status() == tracking.StatusDelivered && e.TrackingID() == assigned.TrackingID()
		})).Return(nil).Once(),
	)

	cmd, err := commands.NewDeliverParcelCommand(actor(t, "a@x.com", user.RoleRider), assigned.ID())
	require.NoError(t, err)

	result, err := newDeliverHandler(parcels, riders, trackingLog).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assigned.ID(), result.ParcelID)
	assert.Equal(t, assignee.ID(), result.RiderID)
	assert.Equal(t, assignee.Email(), result.RiderEmail)
	parcels.AssertExpectations(t)
	riders.AssertExpectations(t)
	trackingLog.AssertExpectations(t)
}

func TestDeliverParcelCommandHandler_Handle_AbortsBeforeMutation(t *testing.T) {
	riderEmail := kernel.MustNewEmail("a@x.com")
	unassigned := newTestParcel(t, "b@x.com")
	assigned := assignedCopy(t, newTestParcel(t, "b@x.com"), riderEmail)

	tests := []struct {
		name         string
		actor        commands.Actor
		parcel       *parcel.Parcel
		parcelErr    error
		findRider    bool
		riderErr     error
		markErr      error
		wantErr      error
		markDelivery bool
	}{
		{
			name:      "parcel not found",
			actor:     adminActor(t),
			parcel:    assigned,
			parcelErr: errs.NewObjectNotFoundError("parcelID", assigned.ID()),
			wantErr:   errs.ErrObjectNotFound,
		},
		{
			name:    "another rider",
			actor:   actor(t, "other@x.com", user.RoleRider),
			parcel:  assigned,
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "plain user",
			actor:   actor(t, "b@x.com", user.RoleUser),
			parcel:  assigned,
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "parcel without rider",
			actor:   adminActor(t),
			parcel:  unassigned,
			wantErr: parcel.ErrNotAssigned,
		},
		{
			name:      "rider record missing",
			actor:     adminActor(t),
			parcel:    assigned,
			findRider: true,
			riderErr:  errs.NewObjectNotFoundError("email", riderEmail),
			wantErr:   errs.ErrObjectNotFound,
		},
		{
			name:         "delivered concurrently",
			actor:        adminActor(t),
			parcel:       assigned,
			findRider:    true,
			markDelivery: true,
			markErr:      parcel.ErrAlreadyDelivered,
			wantErr:      parcel.ErrAlreadyDelivered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			parcels := new(MockParcelStore)
			riders := new(MockRiderStore)
			if tt.parcelErr != nil {
				parcels.On("Get", ctx, tt.parcel.ID()).Return(nil, tt.parcelErr).Once()
			} else {
				parcels.On("Get", ctx, tt.parcel.ID()).Return(tt.parcel, nil).Once()
			}
			if tt.findRider {
				if tt.riderErr != nil {
					riders.On("FindByEmail", ctx, riderEmail).Return(nil, tt.riderErr).Once()
				} else {
					riders.On("FindByEmail", ctx, riderEmail).
						Return(newTestRider(t, "a@x.com", rider.Approved, rider.Busy), nil).Once()
				}
			}
			if tt.markDelivery {
				parcels.On("MarkDelivered", ctx, tt.parcel.ID()).Return(nil, tt.markErr).Once()
			}

			cmd, err := commands.NewDeliverParcelCommand(tt.actor, tt.parcel.ID())
			require.NoError(t, err)

			_, err = newDeliverHandler(parcels, riders, nil).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			require.NotErrorIs(t, err, errs.ErrPartialFailure)
			if !tt.markDelivery {
				parcels.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything)
			}
			riders.AssertNotCalled(t, "SetWorkStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			parcels.AssertExpectations(t)
			riders.AssertExpectations(t)
		})
	}
}

func TestDeliverParcelCommandHandler_Handle_ReleaseFailureIsPartial(t *testing.T) {
	ctx := t.Context()
	assignee := newTestRider(t, "a@x.com", rider.Approved, rider.Busy)
	assigned := assignedCopy(t, newTestParcel(t, "b@x.com"), assignee.Email())
	storeErr := errors.New("write timeout")

	parcels := new(MockParcelStore)
	riders := new(MockRiderStore)
	trackingLog := new(MockTrackingLog)
	mock.InOrder(
		parcels.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once(),
		riders.On("FindByEmail", ctx, assignee.Email()).Return(assignee, nil).Once(),
		parcels.On("MarkDelivered", ctx, assigned.ID()).Return(deliveredCopy(t, assigned), nil).Once(),
		riders.On("SetWorkStatus", ctx, assignee.ID(), rider.Busy, rider.Idle).Return(storeErr).Once(),
	)

	cmd, err := commands.NewDeliverParcelCommand(adminActor(t), assigned.ID())
	require.NoError(t, err)

	_, err = newDeliverHandler(parcels, riders, trackingLog).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartialFailure)
	require.ErrorIs(t, err, storeErr)

	var pf *errs.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, commands.SagaDeliverParcel, pf.Saga)
	assert.Equal(t, commands.StepReleaseRider, pf.FailedStep)
	assert.Contains(t, pf.CompletedSteps, commands.StepMarkParcelDelivered)
	assert.Equal(t, assigned.ID().String(), pf.EntityIDs["parcel_id"])
	assert.Equal(t, assignee.ID().String(), pf.EntityIDs["rider_id"])
	trackingLog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestDeliverParcelCommandHandler_Handle_RiderTakesNextParcel(t *testing.T) {
	ctx := t.Context()
	parcels := newMemParcels()
	riders := newMemRiders()
	locker := services.NewRiderLocker()
	admin := adminActor(t)

	assignee := newTestRider(t, "a@x.com", rider.Approved, rider.Idle)
	require.NoError(t, riders.Apply(ctx, assignee))
	first := newTestParcel(t, "b@x.com")
	second := newTestParcel(t, "b@x.com")
	require.NoError(t, parcels.Create(ctx, first))
	require.NoError(t, parcels.Create(ctx, second))

	assign := commands.NewAssignRiderCommandHandler(parcels, riders, nil, locker, discardLogger())
	deliver := commands.NewDeliverParcelCommandHandler(parcels, riders, nil, locker, discardLogger())

	assignFirst, err := commands.NewAssignRiderCommand(admin, first.ID(), assignee.ID())
	require.NoError(t, err)
	_, err = assign.Handle(ctx, assignFirst)
	require.NoError(t, err)

	assignSecond, err := commands.NewAssignRiderCommand(admin, second.ID(), assignee.ID())
	require.NoError(t, err)
	_, err = assign.Handle(ctx, assignSecond)
	require.ErrorIs(t, err, rider.ErrRiderBusy)

	deliverFirst, err := commands.NewDeliverParcelCommand(actor(t, "a@x.com", user.RoleRider), first.ID())
	require.NoError(t, err)
	_, err = deliver.Handle(ctx, deliverFirst)
	require.NoError(t, err)

	storedRider, err := riders.Get(ctx, assignee.ID())
	require.NoError(t, err)
	assert.Equal(t, rider.Idle, storedRider.WorkStatus())

	_, err = assign.Handle(ctx, assignSecond)
	require.NoError(t, err)

	storedFirst, err := parcels.Get(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.Delivered, storedFirst.Status())
	storedSecond, err := parcels.Get(ctx, second.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.AssignedRider, storedSecond.Status())

	_, err = deliver.Handle(ctx, deliverFirst)
	require.ErrorIs(t, err, parcel.ErrAlreadyDelivered)
}
