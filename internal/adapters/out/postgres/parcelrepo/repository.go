package parcelrepo

import (
	"context"
	"errors"
	"iter"

	"parcels/internal/adapters/out/postgres/cursor"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

func (r *GormParcelRepository) Create(ctx context.Context, p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) ListByOwner(ctx context.Context, owner kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	return cursor.Seq(ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("owner_email = ?", owner.String()).Order("created_at DESC")
	}, toDomain)
}

func (r *GormParcelRepository) ListAll(ctx context.Context) iter.Seq2[*parcel.Parcel, error] {
	return cursor.Seq(ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}, toDomain)
}

func (r *GormParcelRepository) ListPendingForRider(ctx context.Context, riderEmail kernel.Email) iter.Seq2[*parcel.Parcel, error] {
	return cursor.Seq(ctx, r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("assigned_rider = ? AND status = ?", riderEmail.String(), int(parcel.AssignedRider)).
			Order("created_at DESC")
	}, toDomain)
}

// AssignRider writes the status and the rider in one update restricted to an
// unassigned Created parcel.
func (r *GormParcelRepository) AssignRider(ctx context.Context, id kernel.UUID, riderEmail kernel.Email) (*parcel.Parcel, error) {
	if err := errors.Join(id.Validate(), riderEmail.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND status = ? AND assigned_rider IS NULL", id.Bytes(), int(parcel.Created)).
		Updates(map[string]any{
			"status":         int(parcel.AssignedRider),
			"assigned_rider": riderEmail.String(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	return r.afterConditionalWrite(ctx, id, result.RowsAffected, func(current *parcel.Parcel) error {
		return current.AssignRider(riderEmail)
	}, parcel.ErrAlreadyAssigned)
}

// MarkDelivered flips Assigned Rider to Delivered with a conditional update.
func (r *GormParcelRepository) MarkDelivered(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(parcel.AssignedRider)).
		Update("status", int(parcel.Delivered))
	if result.Error != nil {
		return nil, result.Error
	}

	return r.afterConditionalWrite(ctx, id, result.RowsAffected, (*parcel.Parcel).Deliver, parcel.ErrAlreadyDelivered)
}

// MarkPaid flips unpaid to paid with a conditional update. Of any number of
// concurrent calls exactly one affects the row; the rest get ErrAlreadyPaid.
func (r *GormParcelRepository) MarkPaid(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND payment_status = ?", id.Bytes(), int(parcel.Unpaid)).
		Update("payment_status", int(parcel.Paid))
	if result.Error != nil {
		return nil, result.Error
	}

	return r.afterConditionalWrite(ctx, id, result.RowsAffected, (*parcel.Parcel).MarkPaid, parcel.ErrAlreadyPaid)
}

// Delete removes the row only while it is Created, unassigned and unpaid.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ? AND assigned_rider IS NULL AND payment_status = ?",
			id.Bytes(), int(parcel.Created), int(parcel.Unpaid)).
		Delete(&ParcelDTO{})
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
	if err = current.ValidateDeletable(); err != nil {
		return err
	}
	return parcel.ErrNotDeletable
}

// afterConditionalWrite reloads the parcel after a conditional update. When
// the update matched no row, the transition is replayed on the stored parcel
// so the caller gets the domain's reason; fallback covers a row that changed
// again in between.
func (r *GormParcelRepository) afterConditionalWrite(
	ctx context.Context,
	id kernel.UUID,
	rowsAffected int64,
	transition func(*parcel.Parcel) error,
	fallback error,
) (*parcel.Parcel, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		if err = transition(current); err != nil {
			return nil, err
		}
		return nil, fallback
	}

	return current, nil
}
