package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"taskdeck/config"
	"taskdeck/internal/domain/entity"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
	mockRepo "taskdeck/internal/mocks/repository"
	mockService "taskdeck/internal/mocks/service"
	"taskdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	t                *testing.T
	service          usecase.AccountUsecase
	txManager        *mockRepo.MockTransactionManager
	identityProvider *mockService.MockIdentityProvider
}

// onExecute stubs the transaction manager so the callback runs against a
// factory configured by setup, and the callback's error propagates as the
// transaction result.
func (f accountServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			return fn(factory)
		})
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	identityProvider := mockService.NewMockIdentityProvider(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAccountService(AccountServiceParams{
		TxManager:        txManager,
		IdentityProvider: identityProvider,
		Config:           &config.Config{},
		Logger:           logger,
	})

	return accountServiceFixtures{
		t:                t,
		service:          svc,
		txManager:        txManager,
		identityProvider: identityProvider,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		ExternalUID: "fb-uid-123",
		Email:       "dana@example.com",
		Name:        "Dana",
		Birthdate:   strPtr("1990-04-01"),
		Occupation:  strPtr("Engineer"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().FindByEmail(ctx, "dana@example.com").Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "fb-uid-123", user.ExternalUID)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, "Dana", user.Name)
	require.NotNil(t, user.Birthdate)
	assert.Equal(t, "1990-04-01", user.Birthdate.Format("2006-01-02"))
	require.NotNil(t, user.Occupation)
	assert.Equal(t, "Engineer", *user.Occupation)
}

func TestAccountService_Register_TrimsWhitespace(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		ExternalUID: "fb-uid-123",
		Email:       "  dana@example.com  ",
		Name:        "  Dana  ",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().FindByEmail(ctx, "dana@example.com").Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, "Dana", user.Name)
}

func TestAccountService_FindByExternalUID_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	expectedUser := &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
		Email:       "dana@example.com",
		Name:        "Dana",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(expectedUser, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.FindByExternalUID(ctx, "fb-uid-123")

	require.NoError(t, err)
	assert.Equal(t, expectedUser, user)
}

func TestAccountService_FindOrCreate_ExistingUser(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existingUser := &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
		Email:       "dana@example.com",
		Name:        "Dana",
	}
	input := &usecase.FindOrCreateInput{
		ExternalUID: "fb-uid-123",
	}

	fx.identityProvider.EXPECT().
		GetIdentity(ctx, "fb-uid-123").
		Return(nil, service.ErrIdentityNotFound)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(existingUser, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	out, err := fx.service.FindOrCreate(ctx, input)

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, existingUser, out.User)
}

func TestAccountService_FindOrCreate_BackfillsPicture(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existingUser := &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
	}
	input := &usecase.FindOrCreateInput{
		ExternalUID:    "fb-uid-123",
		ProfilePicture: strPtr("https://cdn.example.com/avatar.png"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(existingUser, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	out, err := fx.service.FindOrCreate(ctx, input)

	require.NoError(t, err)
	assert.False(t, out.Created)
	require.NotNil(t, out.User.ProfilePictureURL)
	assert.Equal(t, "https://cdn.example.com/avatar.png", *out.User.ProfilePictureURL)
}

func TestAccountService_FindOrCreate_CreatesPlaceholder(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.FindOrCreateInput{
		ExternalUID: "fb-uid-new",
	}

	// The provider holds an avatar for this federated identity.
	fx.identityProvider.EXPECT().
		GetIdentity(ctx, "fb-uid-new").
		Return(&service.ExternalIdentity{
			UID:        "fb-uid-new",
			PictureURL: "https://lh3.example.com/photo.jpg",
		}, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-new").Return(nil, repository.ErrUserNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	out, err := fx.service.FindOrCreate(ctx, input)

	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "fb-uid-new", out.User.ExternalUID)
	assert.Empty(t, out.User.Email)
	require.NotNil(t, out.User.ProfilePictureURL)
	assert.Equal(t, "https://lh3.example.com/photo.jpg", *out.User.ProfilePictureURL)
}

func TestAccountService_UpdateProfile_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existingUser := &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
		Email:       "dana@example.com",
		Name:        "Dana",
	}
	input := &usecase.UpdateProfileInput{
		Name:       strPtr("Dana Updated"),
		Birthdate:  strPtr("1991-12-24"),
		Occupation: strPtr("Designer"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(existingUser, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.UpdateProfile(ctx, "fb-uid-123", input)

	require.NoError(t, err)
	assert.Equal(t, "Dana Updated", user.Name)
	require.NotNil(t, user.Birthdate)
	assert.Equal(t, "1991-12-24", user.Birthdate.Format("2006-01-02"))
	require.NotNil(t, user.Occupation)
	assert.Equal(t, "Designer", *user.Occupation)
	// Immutable fields survive the update untouched.
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, "fb-uid-123", user.ExternalUID)
}

func TestAccountService_UpdateProfile_PartialUpdate(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	birthdate := mustParseDate(t, "1990-04-01")
	existingUser := &entity.User{
		ID:          uuid.New(),
		ExternalUID: "fb-uid-123",
		Name:        "Dana",
		Birthdate:   &birthdate,
		Occupation:  strPtr("Engineer"),
	}
	input := &usecase.UpdateProfileInput{
		Occupation: strPtr("Manager"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(existingUser, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.UpdateProfile(ctx, "fb-uid-123", input)

	require.NoError(t, err)
	assert.Equal(t, "Dana", user.Name)
	require.NotNil(t, user.Birthdate)
	assert.Equal(t, "1990-04-01", user.Birthdate.Format("2006-01-02"))
	require.NotNil(t, user.Occupation)
	assert.Equal(t, "Manager", *user.Occupation)
}

func TestAccountService_DeleteAccount_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	existingUser := &entity.User{
		ID:          userID,
		ExternalUID: "fb-uid-123",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-123").Return(existingUser, nil)
			mockUserRepo.EXPECT().Delete(ctx, userID).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.identityProvider.EXPECT().
		DeleteIdentity(ctx, "fb-uid-123").
		Return(nil)

	err := fx.service.DeleteAccount(ctx, "fb-uid-123")

	require.NoError(t, err)
}
