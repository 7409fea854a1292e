// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"taskdeck/internal/domain/entity"
)

// AccountUsecase defines the identity reconciliation operations: synchronizing
// an externally-authenticated identity with the locally-owned user record.
type AccountUsecase interface {
	// Register creates the local account for a freshly created external
	// identity. Not transactional with the provider: the caller compensates
	// (deletes the provider account) when this fails.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// FindByExternalUID resolves an authenticated external principal to its
	// local account, or reports that local registration is still pending.
	FindByExternalUID(ctx context.Context, externalUID string) (*entity.User, error)

	// FindOrCreate returns the existing account or creates a minimal
	// placeholder on first contact (the OAuth sign-in path).
	FindOrCreate(ctx context.Context, input *FindOrCreateInput) (*FindOrCreateOutput, error)

	// UpdateProfile applies a partial profile update. The external UID and
	// email are immutable here regardless of input.
	UpdateProfile(ctx context.Context, externalUID string, input *UpdateProfileInput) (*entity.User, error)

	// DeleteAccount removes the local account (tasks cascade) and then the
	// external identity, in that order.
	DeleteAccount(ctx context.Context, externalUID string) error
}

// --- Input/Output DTOs ---

// RegisterInput defines the data required to register a new account.
// Birthdate is a calendar date in "2006-01-02" form.
type RegisterInput struct {
	ExternalUID    string  `json:"externalUid" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Name           string  `json:"name" validate:"required"`
	Birthdate      *string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Occupation     *string `json:"occupation,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}

// FindOrCreateInput defines the data for the create-on-first-contact flow.
type FindOrCreateInput struct {
	ExternalUID    string  `json:"externalUid" validate:"required"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}

// FindOrCreateOutput reports the resolved account and whether it was created
// by this call.
type FindOrCreateOutput struct {
	User    *entity.User
	Created bool
}

// UpdateProfileInput defines the partial profile update. Each field is
// independently optional; absent fields are left untouched.
type UpdateProfileInput struct {
	Name           *string `json:"name,omitempty"`
	Birthdate      *string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Occupation     *string `json:"occupation,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}
