package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand registers a signed-in identity on first sign in.
type RegisterUserCommand struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email kernel.Email) (RegisterUserCommand, error) {
	if err := email.Validate(); err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Email() kernel.Email { return c.email }

type RegisterUserCommandHandler struct {
	users UserStore
}

func NewRegisterUserCommandHandler(users UserStore) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{users: users}
}

// Handle reports whether a new user was inserted. An already registered
// email is a successful no-op.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Email(), time.Now().UTC())
	if err != nil {
		return false, err
	}

	return h.users.RegisterIfAbsent(ctx, u)
}
