// Package tracking models the append-only parcel tracking log. Entries are
// best-effort history: losing one never invalidates a parcel transition.
package tracking

import (
	"errors"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry")

// Well-known statuses written by the workflows themselves. Clients may log
// free-form statuses through the tracking endpoint.
const (
	StatusRiderAssigned = "rider_assigned"
	StatusPaid          = "paid"
	StatusDelivered     = "delivered"
)

type Entry struct {
	id         kernel.UUID
	trackingID string
	parcelID   *kernel.UUID
	status     string
	message    string
	time       time.Time
	updatedBy  string

	isConstructed bool
}

func NewEntry(id kernel.UUID, trackingID string, parcelID *kernel.UUID, status, message, updatedBy string, at time.Time) (*Entry, error) {
	var joined []error
	joined = append(joined, id.Validate())
	if strings.TrimSpace(trackingID) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("trackingId"))
	}
	if strings.TrimSpace(status) == "" {
		joined = append(joined, errs.NewValueIsRequiredError("status"))
	}
	if parcelID != nil {
		joined = append(joined, parcelID.Validate())
	}
	if err := errors.Join(joined...); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		trackingID:    trackingID,
		parcelID:      parcelID,
		status:        status,
		message:       message,
		time:          at,
		updatedBy:     updatedBy,
		isConstructed: true,
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID        { return e.id }
func (e *Entry) TrackingID() string     { return e.trackingID }
func (e *Entry) ParcelID() *kernel.UUID { return e.parcelID }
func (e *Entry) Status() string         { return e.status }
func (e *Entry) Message() string        { return e.message }
func (e *Entry) Time() time.Time        { return e.time }
func (e *Entry) UpdatedBy() string      { return e.updatedBy }
