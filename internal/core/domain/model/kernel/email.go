package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"parcels/internal/pkg/errs"
)

var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

// Email is the identity key shared by users, rider applications, parcels and
// payments. It is stored lower-cased and trimmed so lookups by email are exact.
type Email struct {
	value string
}

// NewEmail normalizes and validates an address. Display names are rejected:
// only the bare addr-spec is accepted.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized || addr.Name != "" {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", raw))
	}

	return Email{value: normalized}, nil
}

// MustNewEmail panics on invalid input. Intended for tests and constants.
func MustNewEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) Validate() error {
	if e.value == "" {
		return ErrEmailIsNotConstructed
	}
	return nil
}

func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}
