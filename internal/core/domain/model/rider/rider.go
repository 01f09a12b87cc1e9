package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")

	// ErrAlreadyApplied is returned when the applicant already has a pending
	// or approved application.
	ErrAlreadyApplied = errs.NewConflictError("rider application", "already applied")

	// ErrAlreadyReviewed is returned when approving or declining an
	// application that is no longer pending.
	ErrAlreadyReviewed = errs.NewConflictError("rider application", "already reviewed")

	ErrRiderNotApproved = errs.NewConflictError("rider", "application is not approved")
	ErrRiderBusy        = errs.NewConflictError("rider", "rider is already busy")

	// ErrWorkStatusChanged is returned by a conditional work-status update
	// whose expected current status no longer holds.
	ErrWorkStatusChanged = errs.NewConflictError("rider", "work status changed concurrently")
)

// Profile is the applicant-supplied part of an application.
type Profile struct {
	Name    string
	Phone   string
	Region  string
	Vehicle string
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

// Rider is a rider application together with the work status the rider has
// once approved. The application status only moves forward from Pending; the
// work status moves between Idle and Busy only while Approved.
type Rider struct {
	id         kernel.UUID
	email      kernel.Email
	profile    Profile
	status     Status
	workStatus WorkStatus
	createdAt  time.Time

	isConstructed bool
}

// NewRider creates a pending, idle application.
func NewRider(id kernel.UUID, email kernel.Email, profile Profile, createdAt time.Time) (*Rider, error) {
	return RestoreRider(id, email, profile, Pending, Idle, createdAt)
}

func RestoreRider(
	id kernel.UUID,
	email kernel.Email,
	profile Profile,
	status Status,
	workStatus WorkStatus,
	createdAt time.Time,
) (*Rider, error) {
	if err := errors.Join(
		id.Validate(),
		email.Validate(),
		profile.validate(),
		status.Validate(),
		workStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return &Rider{
		id:            id,
		email:         email,
		profile:       profile,
		status:        status,
		workStatus:    workStatus,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

func (r *Rider) ID() kernel.UUID        { return r.id }
func (r *Rider) Email() kernel.Email    { return r.email }
func (r *Rider) Profile() Profile       { return r.profile }
func (r *Rider) Status() Status         { return r.status }
func (r *Rider) WorkStatus() WorkStatus { return r.workStatus }
func (r *Rider) CreatedAt() time.Time   { return r.createdAt }

// Review applies an administrator's decision. Only pending applications can
// be reviewed.
func (r *Rider) Review(action Action) error {
	target, err := action.Target()
	if err != nil {
		return err
	}
	if r.status != Pending {
		return fmt.Errorf("%w: status is %s", ErrAlreadyReviewed, r.status)
	}

	r.status = target
	return nil
}

// ValidateAssignable checks the preconditions for handing the rider a parcel.
func (r *Rider) ValidateAssignable() error {
	if r.status != Approved {
		return ErrRiderNotApproved
	}
	if r.workStatus == Busy {
		return ErrRiderBusy
	}
	return nil
}

// SetWorkStatus moves the work status from `from` to `to`. Riders that are
// not approved have no work status to change, and a rider whose current work
// status is not `from` is left as it is.
//
// The rider store performs the same transition as a conditional update and
// calls this method on the stored rider to explain a write that matched no
// row.
//
// Example:
//
//	// release after delivery
//	if err := r.SetWorkStatus(rider.Busy, rider.Idle); errors.Is(err, rider.ErrWorkStatusChanged) {
//	    // the rider was not busy
//	}
func (r *Rider) SetWorkStatus(from, to WorkStatus) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	if r.status != Approved {
		return ErrRiderNotApproved
	}
	if r.workStatus != from {
		return fmt.Errorf("%w: expected %s, found %s", ErrWorkStatusChanged, from, r.workStatus)
	}

	r.workStatus = to
	return nil
}
