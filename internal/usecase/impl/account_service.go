// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskdeck/config"
	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
	"taskdeck/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// birthdateLayout is the calendar-date form accepted on registration and
// profile edits.
const birthdateLayout = "2006-01-02"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	identityProvider service.IdentityProvider
	logger           *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	IdentityProvider service.IdentityProvider
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:        params.TxManager,
		identityProvider: params.IdentityProvider,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the local account for a new external identity. The lookup
// and insert run in one transaction so a concurrent duplicate registration
// cannot slip between them.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if err := validateRegisterInput(input); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.Any("error", err))

		return nil, err
	}

	birthdate, err := parseBirthdate(input.Birthdate)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("externalUID", input.ExternalUID))

	email := strings.TrimSpace(input.Email)

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Idempotency check: at most one row per external UID.
		_, findErr := userRepo.FindByExternalUID(ctx, input.ExternalUID)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrAccountAlreadyExists, "external uid already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing registration")
		}

		// The email pre-check gives the common conflict a deterministic
		// answer; the unique index still backstops the race.
		_, findErr = userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email belongs to a different account")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		newUser := &entity.User{
			ExternalUID:       input.ExternalUID,
			Email:             email,
			Name:              strings.TrimSpace(input.Name),
			Birthdate:         birthdate,
			Occupation:        input.Occupation,
			ProfilePictureURL: input.ProfilePicture,
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return mapDuplicateError(createErr)
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("externalUID", input.ExternalUID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return registeredUser, nil
}

// FindByExternalUID resolves an external principal to its local account.
func (srv *accountService) FindByExternalUID(ctx context.Context, externalUID string) (*entity.User, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "external uid is required")
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.UserRepo().FindByExternalUID(ctx, externalUID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "no local account for this identity")
			}

			return errors.Wrap(findErr, "failed to find user by external uid")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FindOrCreate returns the existing account or creates a minimal placeholder.
// Full-profile completion stays with Register; this flow only ever backfills
// the profile picture.
func (srv *accountService) FindOrCreate(ctx context.Context, input *usecase.FindOrCreateInput) (*usecase.FindOrCreateOutput, error) {
	if input == nil || strings.TrimSpace(input.ExternalUID) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "external uid is required")
	}

	picture := input.ProfilePicture
	if picture == nil {
		// Best effort: the provider may already hold an avatar for a
		// federated identity. Failures here never block the flow.
		if identity, err := srv.identityProvider.GetIdentity(ctx, input.ExternalUID); err == nil && identity.PictureURL != "" {
			picture = &identity.PictureURL
		}
	}

	var out usecase.FindOrCreateOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, findErr := userRepo.FindByExternalUID(ctx, input.ExternalUID)
		if findErr == nil {
			if input.ProfilePicture != nil {
				existing.ProfilePictureURL = input.ProfilePicture
				if updateErr := userRepo.Update(ctx, existing); updateErr != nil {
					return errors.Wrap(updateErr, "failed to backfill profile picture")
				}
			}
			out = usecase.FindOrCreateOutput{User: existing, Created: false}

			return nil
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to find user by external uid")
		}

		placeholder := &entity.User{
			ExternalUID:       input.ExternalUID,
			ProfilePictureURL: picture,
		}
		if createErr := userRepo.Create(ctx, placeholder); createErr != nil {
			return mapDuplicateError(createErr)
		}
		out = usecase.FindOrCreateOutput{User: placeholder, Created: true}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Created {
		srv.log(ctx).Info("Created placeholder account on first contact",
			slog.String("externalUID", input.ExternalUID),
			slog.Any("userID", out.User.ID))
	}

	return &out, nil
}

// UpdateProfile applies a partial profile update. ExternalUID and email are
// never touched, whatever the input carries.
func (srv *accountService) UpdateProfile(ctx context.Context, externalUID string, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "no profile fields supplied")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "name must not be empty")
	}

	birthdate, err := parseBirthdate(input.Birthdate)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, findErr := userRepo.FindByExternalUID(ctx, externalUID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "no local account for this identity")
			}

			return errors.Wrap(findErr, "failed to find user by external uid")
		}

		if input.Name != nil {
			found.Name = strings.TrimSpace(*input.Name)
		}
		if input.Birthdate != nil {
			found.Birthdate = birthdate
		}
		if input.Occupation != nil {
			found.Occupation = input.Occupation
		}
		if input.ProfilePicture != nil {
			found.ProfilePictureURL = input.ProfilePicture
		}

		if updateErr := userRepo.Update(ctx, found); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update profile")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", user.ID))

	return user, nil
}

// DeleteAccount removes the local row first (tasks cascade inside the
// database), then the external identity. A provider failure after the local
// delete leaves at worst an orphaned external identity, which no client can
// reach through this system anymore.
func (srv *accountService) DeleteAccount(ctx context.Context, externalUID string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, findErr := userRepo.FindByExternalUID(ctx, externalUID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "no local account for this identity")
			}

			return errors.Wrap(findErr, "failed to find user by external uid")
		}

		if deleteErr := userRepo.Delete(ctx, found.ID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete local account")
		}

		return nil
	})
	if err != nil {
		return err
	}

	if delErr := srv.identityProvider.DeleteIdentity(ctx, externalUID); delErr != nil {
		// The local row is already gone; report the orphaned identity for
		// manual cleanup rather than pretending the flow succeeded.
		srv.log(ctx).Error("External identity deletion failed after local delete",
			slog.String("externalUID", externalUID),
			slog.Any("error", delErr))

		return errors.Wrap(domainerrors.ErrIdentityProviderFailed, "account removed locally but identity deletion failed")
	}

	srv.log(ctx).Info("Account deleted", slog.String("externalUID", externalUID))

	return nil
}

// --- helpers ---

func validateRegisterInput(input *usecase.RegisterInput) error {
	if input == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "registration input is required")
	}
	if strings.TrimSpace(input.ExternalUID) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "external uid is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "name is required")
	}

	return nil
}

func parseBirthdate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(birthdateLayout, *raw)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "birthdate must be formatted as YYYY-MM-DD")
	}

	return &parsed, nil
}

// mapDuplicateError translates repository duplicate sentinels into the
// conflict taxonomy; the two cases need different remediation on the client.
func mapDuplicateError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateExternalUID):
		return errors.Wrap(domainerrors.ErrAccountAlreadyExists, "external uid already registered")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email belongs to a different account")
	default:
		return errors.Wrap(err, "failed to create user")
	}
}
