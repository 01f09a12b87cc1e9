package commands_test

import (
	"context"
	"iter"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
)

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) RegisterIfAbsent(ctx context.Context, u *user.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserStore) GetRole(ctx context.Context, email kernel.Email) (user.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.Role), args.Error(1)
}

func (m *MockUserStore) SetRole(ctx context.Context, email kernel.Email, role user.Role) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

type MockRiderStore struct{ mock.Mock }

func (m *MockRiderStore) Apply(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderStore) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderStore) FindByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderStore) ListByStatus(ctx context.Context, status rider.Status) iter.Seq2[*rider.Rider, error] {
	args := m.Called(ctx, status)
	return args.Get(0).(iter.Seq2[*rider.Rider, error])
}

func (m *MockRiderStore) ListAll(ctx context.Context) iter.Seq2[*rider.Rider, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[*rider.Rider, error])
}

func (m *MockRiderStore) TransitionStatus(ctx context.Context, id kernel.UUID, action rider.Action) (*rider.Rider, error) {
	args := m.Called(ctx, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderStore) SetWorkStatus(ctx context.Context, id kernel.UUID, from, to rider.WorkStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockParcelStore struct{ mock.Mock }

func (m *MockParcelStore) Create(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelStore) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelStore) ListByOwner(ctx context.Context, owner kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	args := m.Called(ctx, owner)
	return args.Get(0).(iter.Seq2[*parcel.Parcel, error])
}

func (m *MockParcelStore) ListAll(ctx context.Context) iter.Seq2[*parcel.Parcel, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[*parcel.Parcel, error])
}

func (m *MockParcelStore) ListPendingForRider(ctx context.Context, riderEmail kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	args := m.Called(ctx, riderEmail)
	return args.Get(0).(iter.Seq2[*parcel.Parcel, error])
}

func (m *MockParcelStore) AssignRider(ctx context.Context, id kernel.UUID, riderEmail kernel.Email) (*parcel.Parcel, error) {
	args := m.Called(ctx, id, riderEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelStore) MarkPaid(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelStore) MarkDelivered(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelStore) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentLedger struct{ mock.Mock }

func (m *MockPaymentLedger) Append(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentLedger) ListByPayer(ctx context.Context, payer kernel.Email) iter.Seq2[*payment.Payment, error] {
	args := m.Called(ctx, payer)
	return args.Get(0).(iter.Seq2[*payment.Payment, error])
}

func (m *MockPaymentLedger) ListAll(ctx context.Context) iter.Seq2[*payment.Payment, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[*payment.Payment, error])
}

type MockTrackingLog struct{ mock.Mock }

func (m *MockTrackingLog) Append(ctx context.Context, e *tracking.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockTrackingLog) ListByTrackingID(ctx context.Context, trackingID string) iter.Seq2[*tracking.Entry, error] {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(iter.Seq2[*tracking.Entry, error])
}

type MockPaymentProcessor struct{ mock.Mock }

func (m *MockPaymentProcessor) CreateIntent(ctx context.Context, amount int64, currency string) (payment.Intent, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(payment.Intent), args.Error(1)
}
