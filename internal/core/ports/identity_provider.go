package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
)

// Identity is a caller whose credential was verified by the identity provider.
type Identity struct {
	Subject string
	Email   kernel.Email
	Claims  map[string]any
}

// IdentityProvider verifies bearer credentials. Verify returns an
// errs.ForbiddenError when the provider rejects the credential and an
// errs.UpstreamError when the provider could not be consulted.
type IdentityProvider interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}
