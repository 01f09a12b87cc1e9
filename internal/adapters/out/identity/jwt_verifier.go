// Package identity verifies bearer credentials issued by the identity
// provider. Tokens are HS256 JWTs whose "email" claim names the caller.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var _ ports.IdentityProvider = (*JWTVerifier)(nil)

// Claims is the token payload the provider signs.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewJWTVerifier returns a verifier for tokens signed with secret. When
// issuer is not empty the "iss" claim must match it.
func NewJWTVerifier(secret, issuer string) (*JWTVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify returns an UnauthenticatedError for an empty or malformed token and
// a ForbiddenError for a token that parses but is rejected.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (ports.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return ports.Identity{}, errs.NewUnauthenticatedError("credential is missing")
	}

	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return ports.Identity{}, errs.NewUnauthenticatedErrorWithCause("credential is malformed", err)
		}
		return ports.Identity{}, errs.NewForbiddenErrorWithCause("verify credential", "credential was rejected", err)
	}

	email, err := kernel.NewEmail(claims.Email)
	if err != nil {
		return ports.Identity{}, errs.NewForbiddenErrorWithCause("verify credential", "credential carries no valid email", err)
	}

	return ports.Identity{
		Subject: claims.Subject,
		Email:   email,
		Claims: map[string]any{
			"name": claims.Name,
			"iss":  claims.Issuer,
		},
	}, nil
}

// Issue signs a token for email that expires after ttl. It is used by local
// tooling and tests; production tokens come from the provider.
func (v *JWTVerifier) Issue(subject string, email kernel.Email, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
