// Package profile wraps identity and profile storage behind a gateway with
// layered caching: in-memory, durable local KV, then the remote store.
package profile

import (
	"context"
)

// Identity is the record held by the identity provider itself, as opposed
// to the richer profile document kept in the profile store.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Authenticator abstracts the external identity provider.
type Authenticator interface {
	// CreateUser registers a new identity.
	CreateUser(ctx context.Context, email, password string) (Identity, error)
	// SignIn verifies credentials and returns the identity.
	SignIn(ctx context.Context, email, password string) (Identity, error)
	// UpdateDisplayName sets the identity's display name.
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}
