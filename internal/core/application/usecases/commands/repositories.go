// Package commands contains the operations that modify system state.
//
// Together the handlers in this package are the workflow engine: the only
// place where rules spanning more than one store are enforced. The stores
// share no transaction, so every multi-store handler is a saga. It runs its
// steps strictly in order, aborts before any mutation on authorization or
// lookup failures, and reports a later-step failure after an earlier step
// committed as an *errs.PartialFailureError instead of rolling back.
//
// All commands follow the same pattern as the rest of the application layer:
// a constructor that validates input and sets a ConstructorGuard, and a
// handler whose Handle(ctx, cmd) re-checks the guard first.
package commands

import (
	"context"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// Narrow views of the stores, so each handler declares exactly what it
// touches and tests only mock those methods.
type (
	RoleStore interface {
		GetRole(ctx context.Context, email kernel.Email) (user.Role, error)
		SetRole(ctx context.Context, email kernel.Email, role user.Role) error
	}

	UserStore interface {
		RoleStore
		RegisterIfAbsent(ctx context.Context, u *user.User) (bool, error)
		Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	}

	RiderStore       = ports.RiderRepository
	ParcelStore      = ports.ParcelRepository
	PaymentLedger    = ports.PaymentLedger
	TrackingLog      = ports.TrackingLog
	PaymentProcessor = ports.PaymentProcessor
)

// Actor is the verified caller on whose behalf a command runs. Its role was
// resolved from the role store when the request was authenticated.
type Actor struct {
	Email kernel.Email
	Role  user.Role
}

func NewActor(email kernel.Email, role user.Role) (Actor, error) {
	if err := email.Validate(); err != nil {
		return Actor{}, errs.NewUnauthenticatedErrorWithCause("caller identity has no email", err)
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{Email: email, Role: role}, nil
}

// requireAdmin is checked before any store is touched.
func (a Actor) requireAdmin(action string) error {
	if !a.Role.IsAdmin() {
		return errs.NewForbiddenError(action, fmt.Sprintf("role %s may not perform this action, admin required", a.Role))
	}
	return nil
}
