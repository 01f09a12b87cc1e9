package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status is the delivery state of a parcel. It only moves forward:
//
//	Created ──> AssignedRider ──> Delivered
//
// A parcel is assigned once; the rider it was handed to is released when the
// parcel is delivered.
type Status int

const (
	UnknownStatus Status = iota
	Created
	AssignedRider
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Created:       "created",
		AssignedRider: "Assigned Rider",
		Delivered:     "delivered",
	}
}

func (s Status) Validate() error {
	if s != Created && s != AssignedRider && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AssignRider returns the status after handing the parcel to a rider. Only a
// Created parcel can be assigned.
func (s Status) AssignRider() (Status, error) {
	switch s {
	case Created:
		return AssignedRider, nil
	case AssignedRider:
		return UnknownStatus, ErrAlreadyAssigned
	case Delivered:
		return UnknownStatus, ErrAlreadyDelivered
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign a rider", s),
		)
	}
}

// Deliver returns the status after the assigned rider hands the parcel over.
func (s Status) Deliver() (Status, error) {
	switch s {
	case AssignedRider:
		return Delivered, nil
	case Created:
		return UnknownStatus, ErrNotAssigned
	case Delivered:
		return UnknownStatus, ErrAlreadyDelivered
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
}

// ValidateCanHaveRider checks that the status and the presence of an
// assigned rider agree.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s == Created {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s parcel cannot have a rider", s))
	}
	if !hasRider && (s == AssignedRider || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s parcel must have a rider", s))
	}
	return nil
}

// PaymentStatus moves Unpaid -> Paid exactly once.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	Unpaid
	Paid
)

func (p PaymentStatus) String() string {
	switch p {
	case Unpaid:
		return "unpaid"
	case Paid:
		return "paid"
	default:
		return "unknown"
	}
}

func (p PaymentStatus) Validate() error {
	if p != Unpaid && p != Paid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
