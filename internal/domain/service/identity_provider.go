// Package service defines interfaces for external collaborators the use cases
// depend on. Concrete implementations live under internal/infra.
package service

import (
	"context"
	"errors"
)

// ErrIdentityNotFound is returned when the provider has no account for a UID.
var ErrIdentityNotFound = errors.New("identity not found at provider")

// ExternalIdentity holds the subset of provider-side account data the core is
// allowed to see: an opaque UID plus the claims the provider shares on sign-in.
// Credentials never reach this system.
type ExternalIdentity struct {
	UID           string // The provider's stable, opaque per-user identifier.
	Email         string // Email as known to the provider. May be empty for some federated identities.
	DisplayName   string // Display name from the provider, when available.
	PictureURL    string // Avatar URL from the provider, when available.
	EmailVerified bool   // Whether the provider has verified the email.
}

// IdentityProvider is the boundary to the external authentication service.
// The core uses it to verify bearer tokens minted by the provider and to
// remove the provider-side account during account deletion.
type IdentityProvider interface {
	// VerifyIDToken checks a client-supplied ID token and returns the
	// identity it asserts. An invalid or expired token is an error.
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)

	// GetIdentity looks up the provider-side account for a UID.
	GetIdentity(ctx context.Context, uid string) (*ExternalIdentity, error)

	// DeleteIdentity removes the provider-side account. Called after the
	// local row is gone, so a failure leaves at worst an orphaned external
	// identity.
	DeleteIdentity(ctx context.Context, uid string) error
}
