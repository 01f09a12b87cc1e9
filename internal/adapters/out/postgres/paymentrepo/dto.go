// Package paymentrepo is the append-only payment ledger.
package paymentrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID `gorm:"type:uuid;not null;index"`
	PayerEmail    string    `gorm:"not null;index"`
	Amount        int64     `gorm:"not null"`
	Method        string    `gorm:"not null"`
	TransactionID string    `gorm:"not null;uniqueIndex"`
	CreatedAt     time.Time `gorm:"not null"`
	PaidAt        time.Time `gorm:"not null;index"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		ParcelID:      p.ParcelID().Bytes(),
		PayerEmail:    p.Payer().String(),
		Amount:        p.Amount(),
		Method:        p.Method(),
		TransactionID: p.TransactionID(),
		CreatedAt:     p.CreatedAt(),
		PaidAt:        p.PaidAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	payer, err := kernel.NewEmail(dto.PayerEmail)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, parcelID, payer, dto.Amount, dto.Method, dto.TransactionID, dto.CreatedAt, dto.PaidAt)
}
