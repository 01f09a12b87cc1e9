package trackingrepo

import (
	"context"
	"iter"

	"parcels/internal/adapters/out/postgres/cursor"
	"parcels/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

type GormTrackingLog struct {
	db *gorm.DB
}

func NewGormTrackingLog(db *gorm.DB) *GormTrackingLog {
	return &GormTrackingLog{db: db}
}

func (l *GormTrackingLog) Append(ctx context.Context, e *tracking.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return l.db.WithContext(ctx).Create(&dto).Error
}

func (l *GormTrackingLog) ListByTrackingID(ctx context.Context, trackingID string) iter.Seq2[*tracking.Entry, error] {
	return cursor.Seq(ctx, l.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("tracking_id = ?", trackingID).Order("time ASC")
	}, toDomain)
}
