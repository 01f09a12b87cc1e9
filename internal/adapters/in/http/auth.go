package http

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// RoleResolver reads the role a verified caller currently holds.
type RoleResolver interface {
	GetRole(ctx context.Context, email kernel.Email) (user.Role, error)
}

// AuthGate verifies the bearer credential of every request it guards and
// resolves the caller's role from the role store. A request that fails the
// gate never reaches the handler.
type AuthGate struct {
	identities ports.IdentityProvider
	roles      RoleResolver
}

func NewAuthGate(identities ports.IdentityProvider, roles RoleResolver) *AuthGate {
	return &AuthGate{identities: identities, roles: roles}
}

func (g *AuthGate) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		credential, err := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return respondError(ctx, err)
		}

		reqCtx := ctx.Request().Context()
		identity, err := g.identities.Verify(reqCtx, credential)
		if err != nil {
			return respondError(ctx, err)
		}

		role, err := g.roles.GetRole(reqCtx, identity.Email)
		if err != nil {
			return respondError(ctx, err)
		}

		actor, err := commands.NewActor(identity.Email, role)
		if err != nil {
			return respondError(ctx, err)
		}

		ctx.Set(actorContextKey, actor)
		return next(ctx)
	}
}

// RequireRole lets the request through only when the authenticated caller
// holds one of roles. It must run after Authenticate.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := actorFrom(ctx)
			if err != nil {
				return respondError(ctx, err)
			}
			if !slices.Contains(roles, actor.Role) {
				return respondError(ctx, errs.NewForbiddenError(
					ctx.Request().Method+" "+ctx.Path(),
					fmt.Sprintf("role %s is not allowed, required one of %s", actor.Role, rolesString(roles)),
				))
			}
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) (commands.Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(commands.Actor)
	if !ok {
		return commands.Actor{}, errs.NewUnauthenticatedError("request was not authenticated")
	}
	return actor, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errs.NewUnauthenticatedError("authorization header is missing")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errs.NewUnauthenticatedError("authorization header must be Bearer <token>")
	}
	return strings.TrimSpace(token), nil
}

func rolesString(roles []user.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}
