// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. The two duplicate errors are
// deliberately distinct: a taken external UID means "this identity already has
// an account", while a taken email means "this email belongs to someone else".
var (
	// ErrUserNotFound is returned when no user row matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateExternalUID is returned when the external UID unique index rejects an insert.
	ErrDuplicateExternalUID = errors.New("external uid already registered")
	// ErrDuplicateEmail is returned when the email unique index rejects a write.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their local surrogate ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByExternalUID retrieves a single user by the identity provider's opaque UID.
	FindByExternalUID(ctx context.Context, externalUID string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user row. The schema cascades the removal to the
	// user's tasks; callers must not delete them separately.
	Delete(ctx context.Context, id uuid.UUID) error
}
