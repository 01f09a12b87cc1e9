// Package parcelrepo persists parcels, their lifecycle status and payment
// status.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

type ParcelDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID      string    `gorm:"not null;uniqueIndex"`
	OwnerEmail      string    `gorm:"not null;index"`
	Title           string    `gorm:"not null"`
	Kind            string
	WeightKg        float64
	SenderRegion    string
	ReceiverName    string
	ReceiverRegion  string
	ReceiverAddress string
	Cost            int64     `gorm:"not null"`
	Status          int       `gorm:"not null;index"`
	AssignedRider   *string   `gorm:"index"`
	PaymentStatus   int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	var assignedRider *string
	if email := p.AssignedRider(); email != nil {
		raw := email.String()
		assignedRider = &raw
	}

	details := p.Details()
	return ParcelDTO{
		ID:              p.ID().Bytes(),
		TrackingID:      p.TrackingID(),
		OwnerEmail:      p.Owner().String(),
		Title:           details.Title,
		Kind:            details.Kind,
		WeightKg:        details.WeightKg,
		SenderRegion:    details.SenderRegion,
		ReceiverName:    details.ReceiverName,
		ReceiverRegion:  details.ReceiverRegion,
		ReceiverAddress: details.ReceiverAddress,
		Cost:            p.Cost(),
		Status:          int(p.Status()),
		AssignedRider:   assignedRider,
		PaymentStatus:   int(p.PaymentStatus()),
		CreatedAt:       p.CreatedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.NewEmail(dto.OwnerEmail)
	if err != nil {
		return nil, err
	}

	var assignedRider *kernel.Email
	if dto.AssignedRider != nil {
		email, emailErr := kernel.NewEmail(*dto.AssignedRider)
		if emailErr != nil {
			return nil, emailErr
		}
		assignedRider = &email
	}

	details := parcel.Details{
		Title:           dto.Title,
		Kind:            dto.Kind,
		WeightKg:        dto.WeightKg,
		SenderRegion:    dto.SenderRegion,
		ReceiverName:    dto.ReceiverName,
		ReceiverRegion:  dto.ReceiverRegion,
		ReceiverAddress: dto.ReceiverAddress,
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingID,
		owner,
		details,
		dto.Cost,
		parcel.Status(dto.Status),
		assignedRider,
		parcel.PaymentStatus(dto.PaymentStatus),
		dto.CreatedAt,
	)
}
