package user

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Role is the authorization level of a user. The zero value is invalid so
// that an unset field is never mistaken for the default role; the default is
// applied explicitly by DefaultRole.
type Role int

const (
	UnknownRole Role = iota
	RoleUser
	RoleAdmin
	RoleRider
)

// DefaultRole is the role reported for an identity with no stored record.
const DefaultRole = RoleUser

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		RoleUser:    "user",
		RoleAdmin:   "admin",
		RoleRider:   "rider",
	}
}

// ParseRole converts the wire/storage name back into a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r != RoleUser && r != RoleAdmin && r != RoleRider {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ValidateManualAssignment rejects roles that may not be set directly by an
// administrator. The rider role is granted only by approving a rider
// application, so a rider role always has an approved application behind it.
func (r Role) ValidateManualAssignment() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r == RoleRider {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s is granted only through rider approval", r))
	}
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
