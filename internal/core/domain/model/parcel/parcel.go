package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrAlreadyPaid is returned when paying for a parcel a second time. It is
	// a reported conflict, never a silent no-op.
	ErrAlreadyPaid = errs.NewConflictError("parcel", "already paid")

	// ErrAlreadyAssigned is returned when assigning a parcel that already has
	// a rider. Parcels are never reassigned.
	ErrAlreadyAssigned = errs.NewConflictError("parcel", "rider already assigned")

	ErrAlreadyDelivered = errs.NewConflictError("parcel", "already delivered")
	ErrNotAssigned      = errs.NewConflictError("parcel", "no rider assigned")

	// ErrNotDeletable is returned when deleting a parcel that has left the
	// Created status, has a rider or has been paid for.
	ErrNotDeletable = errs.NewConflictError("parcel", "only a created, unassigned and unpaid parcel can be deleted")
)

// Details is the sender-supplied description of a parcel.
type Details struct {
	Title           string
	Kind            string
	WeightKg        float64
	SenderRegion    string
	ReceiverName    string
	ReceiverRegion  string
	ReceiverAddress string
}

func (d Details) validate() error {
	var joined []error
	if strings.TrimSpace(d.Title) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("title"))
	}
	if d.WeightKg < 0 {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is negative", d.WeightKg)))
	}
	return errors.Join(joined...)
}

// Parcel is the aggregate root for a delivery request. Its status and
// assigned rider change only through AssignRider and Deliver; its payment
// status changes only through MarkPaid.
//
// The parcel store applies each of these transitions as a single conditional
// write and, when the write matches no row, replays the method on the stored
// parcel to report why.
type Parcel struct {
	id            kernel.UUID
	trackingID    string
	owner         kernel.Email
	details       Details
	cost          int64
	status        Status
	assignedRider *kernel.Email
	paymentStatus PaymentStatus
	createdAt     time.Time

	isConstructed bool
}

// NewParcel creates an unpaid parcel in Created status with no rider.
// cost is in minor currency units.
func NewParcel(id kernel.UUID, owner kernel.Email, details Details, cost int64, createdAt time.Time) (*Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return RestoreParcel(id, NewTrackingID(id), owner, details, cost, Created, nil, Unpaid, createdAt)
}

// NewTrackingID derives the human-facing tracking code from the parcel ID.
func NewTrackingID(id kernel.UUID) string {
	return "PCL-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10])
}

func RestoreParcel(
	id kernel.UUID,
	trackingID string,
	owner kernel.Email,
	details Details,
	cost int64,
	status Status,
	assignedRider *kernel.Email,
	paymentStatus PaymentStatus,
	createdAt time.Time,
) (*Parcel, error) {
	var costErr error
	if cost < 0 {
		costErr = errs.NewValueIsOutOfRangeError("cost", cost, 0, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		owner.Validate(),
		details.validate(),
		costErr,
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateCanHaveRider(assignedRider != nil),
	); err != nil {
		return nil, err
	}

	return &Parcel{
		id:            id,
		trackingID:    trackingID,
		owner:         owner,
		details:       details,
		cost:          cost,
		status:        status,
		assignedRider: assignedRider,
		paymentStatus: paymentStatus,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.UUID              { return p.id }
func (p *Parcel) TrackingID() string           { return p.trackingID }
func (p *Parcel) Owner() kernel.Email          { return p.owner }
func (p *Parcel) Details() Details             { return p.details }
func (p *Parcel) Cost() int64                  { return p.cost }
func (p *Parcel) Status() Status               { return p.status }
func (p *Parcel) AssignedRider() *kernel.Email { return p.assignedRider }
func (p *Parcel) PaymentStatus() PaymentStatus { return p.paymentStatus }
func (p *Parcel) CreatedAt() time.Time         { return p.createdAt }

// AssignRider hands a Created parcel to the rider with the given email. It
// returns ErrAlreadyAssigned for a parcel that already has a rider. Whether
// that rider exists and is free is checked by the caller.
func (p *Parcel) AssignRider(riderEmail kernel.Email) error {
	if err := riderEmail.Validate(); err != nil {
		return err
	}

	next, err := p.status.AssignRider()
	if err != nil {
		return err
	}

	p.status = next
	p.assignedRider = &riderEmail
	return nil
}

// Deliver completes the delivery of an assigned parcel. The rider stays
// recorded on the parcel.
func (p *Parcel) Deliver() error {
	next, err := p.status.Deliver()
	if err != nil {
		return err
	}

	p.status = next
	return nil
}

// ValidateDeletable checks that removing the parcel cannot orphan a payment
// record or a busy rider.
func (p *Parcel) ValidateDeletable() error {
	switch {
	case p.status != Created:
		return fmt.Errorf("%w: status is %s", ErrNotDeletable, p.status)
	case p.assignedRider != nil:
		return fmt.Errorf("%w: assigned to %s", ErrNotDeletable, p.assignedRider)
	case p.paymentStatus != Unpaid:
		return fmt.Errorf("%w: payment status is %s", ErrNotDeletable, p.paymentStatus)
	}
	return nil
}

// MarkPaid moves the payment status from Unpaid to Paid.
func (p *Parcel) MarkPaid() error {
	if p.paymentStatus == Paid {
		return ErrAlreadyPaid
	}
	p.paymentStatus = Paid
	return nil
}
