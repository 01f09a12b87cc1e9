// Package trackingrepo stores the append-only parcel tracking log.
package trackingrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID string     `gorm:"not null;index"`
	ParcelID   *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"not null"`
	Message    string
	Time       time.Time `gorm:"not null"`
	UpdatedBy  string
}

func (EntryDTO) TableName() string {
	return "tracking_entries"
}

func fromDomain(e *tracking.Entry) EntryDTO {
	var parcelID *uuid.UUID
	if id := e.ParcelID(); id != nil {
		raw := id.Bytes()
		parcelID = &raw
	}

	return EntryDTO{
		ID:         e.ID().Bytes(),
		TrackingID: e.TrackingID(),
		ParcelID:   parcelID,
		Status:     e.Status(),
		Message:    e.Message(),
		Time:       e.Time(),
		UpdatedBy:  e.UpdatedBy(),
	}
}

func toDomain(dto EntryDTO) (*tracking.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parcelID *kernel.UUID
	if dto.ParcelID != nil {
		pID, idErr := kernel.UUIDFromBytes((*dto.ParcelID)[:])
		if idErr != nil {
			return nil, idErr
		}
		parcelID = &pID
	}

	return tracking.NewEntry(id, dto.TrackingID, parcelID, dto.Status, dto.Message, dto.UpdatedBy, dto.Time)
}
