// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Named unique indexes on the users table, matched against driver errors to
// distinguish the two conflict kinds.
const (
	usersExternalUIDConstraint = "uni_users_external_uid"
	usersEmailConstraint       = "uni_users_email"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their local surrogate ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByExternalUID retrieves a single user by the identity provider's opaque UID.
func (repo *userRepository) FindByExternalUID(ctx context.Context, externalUID string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("external_uid = ?", externalUID).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by external uid")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if mapped := mapUserConstraintError(err); mapped != nil {
			return mapped
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate the generated ID and timestamps back onto the entity
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":                userM.Name,
			"birthdate":           userM.Birthdate,
			"occupation":          userM.Occupation,
			"profile_picture_url": userM.ProfilePictureURL,
		})
	if err := result.Error; err != nil {
		if mapped := mapUserConstraintError(err); mapped != nil {
			return mapped
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	refreshed, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		return errors.Wrap(err, "failed to reload user after update")
	}
	user.UpdatedAt = refreshed.UpdatedAt

	return nil
}

// Delete removes a user row. Tasks go with it via the ON DELETE CASCADE
// constraint, not via application code.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// mapUserConstraintError translates a driver error on the users table into a
// domain sentinel, or nil when the error is not a recognized constraint.
func mapUserConstraintError(err error) error {
	if isUniqueConstraintViolation(err) {
		if violatedConstraint(err, usersEmailConstraint) {
			return repository.ErrDuplicateEmail
		}

		// Ambiguous duplicates default to the external UID sentinel: the
		// register flow has already checked the UID is free, so by the time
		// a duplicate slips through, the UID index is the usual culprit.
		return repository.ErrDuplicateExternalUID
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	email := ""
	if data.Email != nil {
		email = *data.Email
	}

	return &entity.User{
		ID:                data.ID,
		ExternalUID:       data.ExternalUID,
		Email:             email,
		Name:              data.Name,
		Birthdate:         data.Birthdate,
		Occupation:        data.Occupation,
		ProfilePictureURL: data.ProfilePictureURL,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	// Empty emails are stored as NULL so placeholder rows do not collide on
	// the unique index.
	var email *string
	if data.Email != "" {
		email = &data.Email
	}

	return &model.UserModel{
		ID:                data.ID,
		ExternalUID:       data.ExternalUID,
		Email:             email,
		Name:              data.Name,
		Birthdate:         data.Birthdate,
		Occupation:        data.Occupation,
		ProfilePictureURL: data.ProfilePictureURL,
	}
}
