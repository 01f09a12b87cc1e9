package paymentrepo

import (
	"context"
	"errors"
	"iter"

	"parcels/internal/adapters/out/postgres/cursor"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrDuplicateTransaction is returned when a processor transaction ID is
// recorded twice.
var ErrDuplicateTransaction = errs.NewConflictError("payment", "duplicate transaction id")

// GormPaymentLedger implements ports.PaymentLedger. It has no update or
// delete path.
type GormPaymentLedger struct {
	db *gorm.DB
}

func NewGormPaymentLedger(db *gorm.DB) *GormPaymentLedger {
	return &GormPaymentLedger{db: db}
}

func (l *GormPaymentLedger) Append(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTransaction
		}
		return err
	}

	return nil
}

func (l *GormPaymentLedger) ListByPayer(ctx context.Context, payer kernel.Email) iter.Seq2[*payment.Payment, error] {
	return cursor.Seq(ctx, l.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("payer_email = ?", payer.String()).Order("paid_at DESC")
	}, toDomain)
}

func (l *GormPaymentLedger) ListAll(ctx context.Context) iter.Seq2[*payment.Payment, error] {
	return cursor.Seq(ctx, l.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("paid_at DESC")
	}, toDomain)
}
