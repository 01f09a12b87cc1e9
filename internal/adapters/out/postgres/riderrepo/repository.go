package riderrepo

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"parcels/internal/adapters/out/postgres/cursor"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements ports.RiderRepository. Status and work
// status changes are conditional updates, so the row is never read and
// written back.
type GormRiderRepository struct {
	db *gorm.DB
}

func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Apply relies on idx_riders_active_email; the database needs
// gorm.Config.TranslateError for the duplicate to be recognized.
func (r *GormRiderRepository) Apply(ctx context.Context, application *rider.Rider) error {
	if err := application.Validate(); err != nil {
		return err
	}

	dto := fromDomain(application)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", rider.ErrAlreadyApplied, application.Email())
		}
		return err
	}

	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRiderRepository) FindByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	err := r.db.WithContext(ctx).
		Where("email = ? AND status <> ?", email.String(), int(rider.Declined)).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", email.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRiderRepository) ListByStatus(ctx context.Context, status rider.Status) iter.Seq2[*rider.Rider, error] {
	return cursor.Seq(ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", int(status)).Order("created_at DESC")
	}, toDomain)
}

func (r *GormRiderRepository) ListAll(ctx context.Context) iter.Seq2[*rider.Rider, error] {
	return cursor.Seq(ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}, toDomain)
}

// TransitionStatus moves a pending application to the action's target
// status. Only one of two concurrent reviews can match the pending row.
func (r *GormRiderRepository) TransitionStatus(ctx context.Context, id kernel.UUID, action rider.Action) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	target, err := action.Target()
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(rider.Pending)).
		Update("status", int(target))
	if result.Error != nil {
		return nil, result.Error
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		// Replay the review on the stored row to report why it did not match.
		if err = current.Review(action); err != nil {
			return nil, err
		}
		return nil, rider.ErrAlreadyReviewed
	}

	return current, nil
}

// SetWorkStatus is a compare-and-set on the work status of an approved rider.
func (r *GormRiderRepository) SetWorkStatus(ctx context.Context, id kernel.UUID, from, to rider.WorkStatus) error {
	if err := errors.Join(id.Validate(), from.Validate(), to.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ? AND work_status = ?", id.Bytes(), int(rider.Approved), int(from)).
		Update("work_status", int(to))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = current.SetWorkStatus(from, to); err != nil {
		return err
	}
	return rider.ErrWorkStatusChanged
}
