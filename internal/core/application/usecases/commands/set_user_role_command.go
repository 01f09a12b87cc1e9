package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/guard"
)

var ErrSetUserRoleCommandIsNotConstructed = errors.New(
	"SetUserRoleCommand must be created via NewSetUserRoleCommand constructor",
)

// SetUserRoleCommand lets an administrator make a user an admin or a plain
// user. The rider role cannot be set this way.
type SetUserRoleCommand struct {
	actor  Actor
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewSetUserRoleCommand(actor Actor, userID kernel.UUID, role user.Role) (SetUserRoleCommand, error) {
	if err := errors.Join(userID.Validate(), role.ValidateManualAssignment()); err != nil {
		return SetUserRoleCommand{}, err
	}

	return SetUserRoleCommand{
		actor:  actor,
		userID: userID,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SetUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrSetUserRoleCommandIsNotConstructed)
}

func (c SetUserRoleCommand) Actor() Actor        { return c.actor }
func (c SetUserRoleCommand) UserID() kernel.UUID { return c.userID }
func (c SetUserRoleCommand) Role() user.Role     { return c.role }

// SetUserRoleCommandHandler changes the role of a registered user, looked up
// by ID. Only admins may call it, and the rider role is rejected when the
// command is built: riders are promoted only by approving their application.
//
// Example:
//
//	handler := NewSetUserRoleCommandHandler(users)
//	cmd, err := NewSetUserRoleCommand(admin, userID, user.RoleAdmin)
//	if err != nil {
//	    return err // e.g. user.RoleRider
//	}
//	err = handler.Handle(ctx, cmd)
type SetUserRoleCommandHandler struct {
	users UserStore
}

func NewSetUserRoleCommandHandler(users UserStore) SetUserRoleCommandHandler {
	return SetUserRoleCommandHandler{users: users}
}

func (h SetUserRoleCommandHandler) Handle(ctx context.Context, cmd SetUserRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().requireAdmin("set user role"); err != nil {
		return err
	}

	target, err := h.users.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	return h.users.SetRole(ctx, target.Email(), cmd.Role())
}
