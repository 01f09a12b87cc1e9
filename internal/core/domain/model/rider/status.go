package rider

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status is the review state of a rider application.
//
//	Pending ──approve──> Approved
//	   └─────decline───> Declined
//
// Approved and Declined are terminal.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Approved
	Declined
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Pending:       "pending",
		Approved:      "approved",
		Declined:      "declined",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid rider status", s))
}

func (s Status) Validate() error {
	if s != Pending && s != Approved && s != Declined {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether an application in this status blocks a new
// application for the same email.
func (s Status) IsActive() bool {
	return s == Pending || s == Approved
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WorkStatus tracks whether an approved rider is free for a new assignment.
type WorkStatus int

const (
	UnknownWorkStatus WorkStatus = iota
	Idle
	Busy
)

func (w WorkStatus) String() string {
	switch w {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

func ParseWorkStatus(s string) (WorkStatus, error) {
	switch s {
	case "idle":
		return Idle, nil
	case "busy":
		return Busy, nil
	default:
		return UnknownWorkStatus, errs.NewValueIsInvalidErrorWithCause("workStatus", fmt.Errorf("%q is not a valid work status", s))
	}
}

func (w WorkStatus) Validate() error {
	if w != Idle && w != Busy {
		return errs.NewValueIsInvalidErrorWithCause("workStatus", fmt.Errorf("%d is not a valid work status", w))
	}
	return nil
}

func (w WorkStatus) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Action is an administrator's decision on a pending application.
type Action int

const (
	UnknownAction Action = iota
	Approve
	Decline
)

func ParseAction(s string) (Action, error) {
	switch s {
	case "approve":
		return Approve, nil
	case "decline":
		return Decline, nil
	default:
		return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not one of approve, decline", s))
	}
}

func (a Action) String() string {
	switch a {
	case Approve:
		return "approve"
	case Decline:
		return "decline"
	default:
		return "unknown"
	}
}

// Target returns the status an application moves to under this action.
func (a Action) Target() (Status, error) {
	switch a {
	case Approve:
		return Approved, nil
	case Decline:
		return Declined, nil
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
}
