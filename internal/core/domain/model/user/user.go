package user

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is a signed-in identity and its role. Users are created on first sign
// in with DefaultRole and are never deleted; only SetRole mutates them.
type User struct {
	id        kernel.UUID
	email     kernel.Email
	role      Role
	createdAt time.Time

	isConstructed bool
}

// NewUser registers a first-time identity with the default role.
func NewUser(id kernel.UUID, email kernel.Email, createdAt time.Time) (*User, error) {
	return RestoreUser(id, email, DefaultRole, createdAt)
}

// RestoreUser rebuilds a user from persistence.
func RestoreUser(id kernel.UUID, email kernel.Email, role Role, createdAt time.Time) (*User, error) {
	if err := errors.Join(id.Validate(), email.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		email:         email,
		role:          role,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Email() kernel.Email  { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// SetRole is idempotent: setting the current role again is not an error.
func (u *User) SetRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
