// Package identity verifies bearer tokens against the configured identity
// provider.
package identity

import (
	"context"
	"errors"

	"file-aggregator/config"
)

// ErrInvalidToken is returned when the provider does not resolve a token to
// an identity.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the caller resolved from a bearer token. It lives for one
// request and is never cached.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// New returns the verifier selected by cfg, or nil when no identity provider
// is configured. A JWT secret takes precedence over the remote provider.
func New(cfg *config.Config) Verifier {
	switch {
	case cfg.AuthJWTSecret != "":
		return NewJWTVerifier([]byte(cfg.AuthJWTSecret))
	case cfg.AuthProviderURL != "":
		return NewRemoteVerifier(cfg.AuthProviderURL, cfg.AuthProviderKey)
	default:
		return nil
	}
}
