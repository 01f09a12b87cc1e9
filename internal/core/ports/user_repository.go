// Package ports defines the interfaces between the workflow commands and the
// outside world: the four independent stores (users, riders, parcels,
// payments), the tracking log, the identity provider and the payment
// processor.
//
// The stores share no transaction. Each method is individually atomic and
// durable once it returns nil; multi-store consistency is the job of the
// command handlers that call them in a fixed order.
package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
)

// UserRepository is the role store: the source of truth for authorization.
type UserRepository interface {
	// RegisterIfAbsent inserts u unless a user with the same email exists.
	// created is false (and err nil) when the email was already registered.
	RegisterIfAbsent(ctx context.Context, u *user.User) (created bool, err error)

	// Get returns the user with the given ID or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetRole returns the stored role for email, or user.DefaultRole when no
	// user is registered under it. Absence is not an error.
	GetRole(ctx context.Context, email kernel.Email) (user.Role, error)

	// SetRole stores role for email. Setting the current role again succeeds.
	// Returns an errs.ObjectNotFoundError when the email is unknown.
	// Authorization is the caller's responsibility.
	SetRole(ctx context.Context, email kernel.Email, role user.Role) error
}
