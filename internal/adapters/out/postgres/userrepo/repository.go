package userrepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// RegisterIfAbsent inserts the user unless the email is taken. The check and
// the insert are one statement, so concurrent first sign-ins create one row.
func (r *GormUserRepository) RegisterIfAbsent(ctx context.Context, u *user.User) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(u)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetRole falls back to user.DefaultRole for unregistered emails.
func (r *GormUserRepository) GetRole(ctx context.Context, email kernel.Email) (user.Role, error) {
	if err := email.Validate(); err != nil {
		return user.UnknownRole, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).Select("role").Take(&dto, "email = ?", email.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.DefaultRole, nil
	}
	if err != nil {
		return user.UnknownRole, err
	}

	role := user.Role(dto.Role)
	if err = role.Validate(); err != nil {
		return user.UnknownRole, err
	}
	return role, nil
}

// SetRole is idempotent: postgres counts matched rows, so writing the
// current role again still affects one row.
func (r *GormUserRepository) SetRole(ctx context.Context, email kernel.Email, role user.Role) error {
	if err := errors.Join(email.Validate(), role.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("email = ?", email.String()).
		Update("role", int(role))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", email.String())
	}

	return nil
}
