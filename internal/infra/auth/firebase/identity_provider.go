// Package firebase implements the identity-provider boundary against
// Firebase Authentication through the Admin SDK.
package firebase

import (
	"context"
	"log/slog"

	"taskdeck/config"
	"taskdeck/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type identityProvider struct {
	client *auth.Client
	logger *slog.Logger
}

// NewIdentityProvider creates the Firebase-backed identity provider.
func NewIdentityProvider(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (service.IdentityProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return &identityProvider{
		client: client,
		logger: logger,
	}, nil
}

// VerifyIDToken checks the signature and expiry of a client-supplied ID token
// and returns the identity it asserts.
func (p *identityProvider) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		p.logger.Warn("ID token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	identity := &service.ExternalIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PictureURL = picture
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}

	return identity, nil
}

// GetIdentity looks up the provider-side account for a UID.
func (p *identityProvider) GetIdentity(ctx context.Context, uid string) (*service.ExternalIdentity, error) {
	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, service.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch identity from provider")
	}

	return &service.ExternalIdentity{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		PictureURL:    record.PhotoURL,
		EmailVerified: record.EmailVerified,
	}, nil
}

// DeleteIdentity removes the provider-side account. Deleting an already-gone
// identity is treated as success so retries of the deletion flow converge.
func (p *identityProvider) DeleteIdentity(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			p.logger.Debug("Identity already absent at provider", slog.String("uid", uid))

			return nil
		}

		return errors.Wrap(err, "failed to delete identity at provider")
	}

	return nil
}
