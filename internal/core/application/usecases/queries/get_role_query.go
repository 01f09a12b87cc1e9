package queries

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/guard"
)

var ErrGetRoleQueryIsNotConstructed = errors.New(
	"GetRoleQuery must be created via NewGetRoleQuery constructor",
)

// GetRoleQuery reads the role stored for an email. Unknown emails have the
// default role.
type GetRoleQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

func NewGetRoleQuery(email kernel.Email) (GetRoleQuery, error) {
	if err := email.Validate(); err != nil {
		return GetRoleQuery{}, err
	}
	return GetRoleQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRoleQuery) Validate() error {
	return q.guard.Validate(ErrGetRoleQueryIsNotConstructed)
}

func (q GetRoleQuery) Email() kernel.Email { return q.email }

type GetRoleQueryResponse struct {
	Email kernel.Email
	Role  user.Role
}

type GetRoleQueryHandler struct {
	roles RoleReader
}

func NewGetRoleQueryHandler(roles RoleReader) GetRoleQueryHandler {
	return GetRoleQueryHandler{roles: roles}
}

func (h GetRoleQueryHandler) Handle(ctx context.Context, q GetRoleQuery) (GetRoleQueryResponse, error) {
	if err := q.Validate(); err != nil {
		return GetRoleQueryResponse{}, err
	}

	role, err := h.roles.GetRole(ctx, q.email)
	if err != nil {
		return GetRoleQueryResponse{}, err
	}
	return GetRoleQueryResponse{Email: q.email, Role: role}, nil
}
