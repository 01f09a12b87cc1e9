package commands_test

import (
	"context"
	"iter"
	"sync"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
)

// In-memory stores used by the scenario tests. Each method is atomic under
// the store's own mutex and nothing is shared between stores, which is the
// consistency model the handlers are written against. The fail* fields inject
// a failure into one method.

func seqOf[T any](items []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

type memUsers struct {
	mu          sync.Mutex
	byEmail     map[kernel.Email]*user.User
	failSetRole error
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[kernel.Email]*user.User{}}
}

func (s *memUsers) RegisterIfAbsent(_ context.Context, u *user.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email()]; ok {
		return false, nil
	}
	s.byEmail[u.Email()] = u
	return true, nil
}

func (s *memUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.ID().IsEqual(id) {
			return user.RestoreUser(u.ID(), u.Email(), u.Role(), u.CreatedAt())
		}
	}
	return nil, errs.NewObjectNotFoundError("userID", id)
}

func (s *memUsers) GetRole(_ context.Context, email kernel.Email) (user.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byEmail[email]; ok {
		return u.Role(), nil
	}
	return user.DefaultRole, nil
}

func (s *memUsers) SetRole(_ context.Context, email kernel.Email, role user.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSetRole != nil {
		return s.failSetRole
	}
	u, ok := s.byEmail[email]
	if !ok {
		return errs.NewObjectNotFoundError("email", email)
	}
	return u.SetRole(role)
}

type memRiders struct {
	mu                sync.Mutex
	byID              map[kernel.UUID]*rider.Rider
	failSetWorkStatus error
}

func newMemRiders() *memRiders {
	return &memRiders{byID: map[kernel.UUID]*rider.Rider{}}
}

func cloneRider(r *rider.Rider) *rider.Rider {
	c, _ := rider.RestoreRider(r.ID(), r.Email(), r.Profile(), r.Status(), r.WorkStatus(), r.CreatedAt())
	return c
}

func (s *memRiders) Apply(_ context.Context, r *rider.Rider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email().IsEqual(r.Email()) && existing.Status().IsActive() {
			return rider.ErrAlreadyApplied
		}
	}
	s.byID[r.ID()] = cloneRider(r)
	return nil
}

func (s *memRiders) Get(_ context.Context, id kernel.UUID) (*rider.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("riderID", id)
	}
	return cloneRider(r), nil
}

func (s *memRiders) FindByEmail(_ context.Context, email kernel.Email) (*rider.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.Email().IsEqual(email) && r.Status().IsActive() {
			return cloneRider(r), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("email", email)
}

func (s *memRiders) ListByStatus(_ context.Context, status rider.Status) iter.Seq2[*rider.Rider, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*rider.Rider
	for _, r := range s.byID {
		if r.Status() == status {
			out = append(out, cloneRider(r))
		}
	}
	return seqOf(out)
}

func (s *memRiders) ListAll(_ context.Context) iter.Seq2[*rider.Rider, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*rider.Rider
	for _, r := range s.byID {
		out = append(out, cloneRider(r))
	}
	return seqOf(out)
}

func (s *memRiders) TransitionStatus(_ context.Context, id kernel.UUID, action rider.Action) (*rider.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("riderID", id)
	}
	next := cloneRider(r)
	if err := next.Review(action); err != nil {
		return nil, err
	}
	s.byID[id] = next
	return cloneRider(next), nil
}

func (s *memRiders) SetWorkStatus(_ context.Context, id kernel.UUID, from, to rider.WorkStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSetWorkStatus != nil {
		return s.failSetWorkStatus
	}
	r, ok := s.byID[id]
	if !ok {
		return errs.NewObjectNotFoundError("riderID", id)
	}
	next := cloneRider(r)
	if err := next.SetWorkStatus(from, to); err != nil {
		return err
	}
	s.byID[id] = next
	return nil
}

type memParcels struct {
	mu   sync.Mutex
	byID map[kernel.UUID]*parcel.Parcel

	// afterGet runs outside the lock after every Get; tests use it to hold
	// sagas between their pre-read and their write.
	afterGet func()
}

func newMemParcels() *memParcels {
	return &memParcels{byID: map[kernel.UUID]*parcel.Parcel{}}
}

func cloneParcel(p *parcel.Parcel) *parcel.Parcel {
	c, _ := parcel.RestoreParcel(p.ID(), p.TrackingID(), p.Owner(), p.Details(), p.Cost(),
		p.Status(), p.AssignedRider(), p.PaymentStatus(), p.CreatedAt())
	return c
}

func (s *memParcels) Create(_ context.Context, p *parcel.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID()] = cloneParcel(p)
	return nil
}

func (s *memParcels) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if s.afterGet != nil {
		defer s.afterGet()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	return cloneParcel(p), nil
}

func (s *memParcels) list(keep func(*parcel.Parcel) bool) iter.Seq2[*parcel.Parcel, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*parcel.Parcel
	for _, p := range s.byID {
		if keep(p) {
			out = append(out, cloneParcel(p))
		}
	}
	return seqOf(out)
}

func (s *memParcels) ListByOwner(_ context.Context, owner kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	return s.list(func(p *parcel.Parcel) bool { return p.Owner().IsEqual(owner) })
}

func (s *memParcels) ListAll(_ context.Context) iter.Seq2[*parcel.Parcel, error] {
	return s.list(func(*parcel.Parcel) bool { return true })
}

func (s *memParcels) ListPendingForRider(_ context.Context, riderEmail kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	return s.list(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.AssignedRider && p.AssignedRider() != nil && p.AssignedRider().IsEqual(riderEmail)
	})
}

func (s *memParcels) AssignRider(_ context.Context, id kernel.UUID, riderEmail kernel.Email) (*parcel.Parcel, error) {
	return s.update(id, func(p *parcel.Parcel) error { return p.AssignRider(riderEmail) })
}

// update applies transition to a copy of the stored parcel and keeps it only
// when the transition succeeds, like the conditional updates of the real store.
func (s *memParcels) update(id kernel.UUID, transition func(*parcel.Parcel) error) (*parcel.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	next := cloneParcel(p)
	if err := transition(next); err != nil {
		return nil, err
	}
	s.byID[id] = next
	return cloneParcel(next), nil
}

func (s *memParcels) MarkDelivered(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return s.update(id, (*parcel.Parcel).Deliver)
}

func (s *memParcels) Delete(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return errs.NewObjectNotFoundError("parcelID", id)
	}
	if err := p.ValidateDeletable(); err != nil {
		return err
	}
	delete(s.byID, id)
	return nil
}

func (s *memParcels) MarkPaid(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return s.update(id, (*parcel.Parcel).MarkPaid)
}

type memLedger struct {
	mu         sync.Mutex
	records    []*payment.Payment
	failAppend error
}

func (s *memLedger) Append(_ context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend != nil {
		return s.failAppend
	}
	s.records = append(s.records, p)
	return nil
}

func (s *memLedger) ListByPayer(_ context.Context, payer kernel.Email) iter.Seq2[*payment.Payment, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*payment.Payment
	for _, p := range s.records {
		if p.Payer().IsEqual(payer) {
			out = append(out, p)
		}
	}
	return seqOf(out)
}

func (s *memLedger) ListAll(_ context.Context) iter.Seq2[*payment.Payment, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seqOf(append([]*payment.Payment(nil), s.records...))
}

func (s *memLedger) count(parcelID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.records {
		if p.ParcelID().IsEqual(parcelID) {
			n++
		}
	}
	return n
}

type memTracking struct {
	mu      sync.Mutex
	entries []*tracking.Entry
}

func (s *memTracking) Append(_ context.Context, e *tracking.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *memTracking) ListByTrackingID(_ context.Context, trackingID string) iter.Seq2[*tracking.Entry, error] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*tracking.Entry
	for _, e := range s.entries {
		if e.TrackingID() == trackingID {
			out = append(out, e)
		}
	}
	return seqOf(out)
}
