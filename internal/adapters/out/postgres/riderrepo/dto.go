// Package riderrepo persists rider applications together with the rider's
// work status.
package riderrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is one application row. The partial unique index keeps at most
// one pending or approved application per email; declined rows (status 3)
// are outside it so an applicant can apply again.
type RiderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email      string    `gorm:"not null;index:idx_riders_active_email,unique,where:status <> 3"`
	Name       string    `gorm:"not null"`
	Phone      string
	Region     string
	Vehicle    string
	Status     int       `gorm:"not null;index"`
	WorkStatus int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	profile := r.Profile()
	return RiderDTO{
		ID:         r.ID().Bytes(),
		Email:      r.Email().String(),
		Name:       profile.Name,
		Phone:      profile.Phone,
		Region:     profile.Region,
		Vehicle:    profile.Vehicle,
		Status:     int(r.Status()),
		WorkStatus: int(r.WorkStatus()),
		CreatedAt:  r.CreatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	profile := rider.Profile{
		Name:    dto.Name,
		Phone:   dto.Phone,
		Region:  dto.Region,
		Vehicle: dto.Vehicle,
	}

	return rider.RestoreRider(id, email, profile, rider.Status(dto.Status), rider.WorkStatus(dto.WorkStatus), dto.CreatedAt)
}
