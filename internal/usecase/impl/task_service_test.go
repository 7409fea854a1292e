package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"taskdeck/config"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
	mockRepo "taskdeck/internal/mocks/repository"
	mockService "taskdeck/internal/mocks/service"
	"taskdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// taskServiceFixtures holds all test dependencies for task service tests.
type taskServiceFixtures struct {
	service   usecase.TaskUsecase
	userRepo  *mockRepo.MockUserRepository
	taskRepo  *mockRepo.MockTaskRepository
	publisher *mockService.MockEventPublisher
}

func createTestTaskService(t *testing.T) taskServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	taskRepo := mockRepo.NewMockTaskRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewTaskService(TaskServiceParams{
		UserRepo:  userRepo,
		TaskRepo:  taskRepo,
		Publisher: publisher,
		Config:    &config.Config{},
		Logger:    logger,
	})

	return taskServiceFixtures{
		service:   svc,
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		publisher: publisher,
	}
}

func (f taskServiceFixtures) expectOwner(ctx context.Context, externalUID string, owner *entity.User) {
	f.userRepo.EXPECT().FindByExternalUID(ctx, externalUID).Return(owner, nil)
}

func TestTaskService_List_Success(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	expected := []*entity.Task{
		{ID: uuid.New(), OwnerID: owner.ID, Text: "buy milk"},
		{ID: uuid.New(), OwnerID: owner.ID, Text: "walk dog", Completed: true},
	}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByOwner(ctx, owner.ID).Return(expected, nil)

	tasks, err := fx.service.List(ctx, "fb-uid-123")

	require.NoError(t, err)
	assert.Equal(t, expected, tasks)
}

func TestTaskService_List_EmptyResult(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByOwner(ctx, owner.ID).Return([]*entity.Task{}, nil)

	tasks, err := fx.service.List(ctx, "fb-uid-123")

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_List_UnknownPrincipal(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().FindByExternalUID(ctx, "fb-uid-unknown").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.List(ctx, "fb-uid-unknown")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestTaskService_Create_Success(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	input := &usecase.CreateTaskInput{Text: "  buy milk  "}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(ctx context.Context, task *entity.Task) {
			task.ID = uuid.New()
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishTaskEvent(ctx, mock.AnythingOfType("*service.TaskEvent")).
		Return(nil)

	task, err := fx.service.Create(ctx, "fb-uid-123", input)

	require.NoError(t, err)
	assert.Equal(t, owner.ID, task.OwnerID)
	assert.Equal(t, "buy milk", task.Text)
	assert.False(t, task.Completed)
}

func TestTaskService_Create_EmptyText(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()

	for _, input := range []*usecase.CreateTaskInput{nil, {Text: ""}, {Text: "   "}} {
		_, err := fx.service.Create(ctx, "fb-uid-123", input)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestTaskService_Create_PublishFailureIsSwallowed(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	input := &usecase.CreateTaskInput{Text: "buy milk"}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Task")).Return(nil)
	fx.publisher.EXPECT().
		PublishTaskEvent(ctx, mock.AnythingOfType("*service.TaskEvent")).
		Return(errors.New("broker unavailable"))

	task, err := fx.service.Create(ctx, "fb-uid-123", input)

	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Text)
}

func TestTaskService_Update_Success(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	existing := &entity.Task{ID: taskID, OwnerID: owner.ID, Text: "buy milk"}
	completed := true
	input := &usecase.UpdateTaskInput{
		Text:      strPtr("buy oat milk"),
		Completed: &completed,
	}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(existing, nil)
	fx.taskRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Task")).Return(nil)
	fx.publisher.EXPECT().
		PublishTaskEvent(ctx, mock.AnythingOfType("*service.TaskEvent")).
		Run(func(ctx context.Context, event *service.TaskEvent) {
			assert.Equal(t, service.TaskEventUpdated, event.Type)
			assert.Equal(t, taskID.String(), event.TaskID)
		}).
		Return(nil)

	task, err := fx.service.Update(ctx, "fb-uid-123", taskID, input)

	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", task.Text)
	assert.True(t, task.Completed)
}

func TestTaskService_Update_ToggleOnly(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	existing := &entity.Task{ID: taskID, OwnerID: owner.ID, Text: "buy milk"}
	completed := true
	input := &usecase.UpdateTaskInput{Completed: &completed}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(existing, nil)
	fx.taskRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Task")).Return(nil)
	fx.publisher.EXPECT().PublishTaskEvent(ctx, mock.AnythingOfType("*service.TaskEvent")).Return(nil)

	task, err := fx.service.Update(ctx, "fb-uid-123", taskID, input)

	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Text)
	assert.True(t, task.Completed)
}

func TestTaskService_Update_NoFields(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()

	_, err := fx.service.Update(ctx, "fb-uid-123", uuid.New(), &usecase.UpdateTaskInput{})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestTaskService_Update_ForeignTask(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	foreign := &entity.Task{ID: taskID, OwnerID: uuid.New(), Text: "not yours"}
	completed := true
	input := &usecase.UpdateTaskInput{Completed: &completed}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(foreign, nil)

	_, err := fx.service.Update(ctx, "fb-uid-123", taskID, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskOwnershipViolation))
}

func TestTaskService_Update_NotFound(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	completed := true
	input := &usecase.UpdateTaskInput{Completed: &completed}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(nil, repository.ErrTaskNotFound)

	_, err := fx.service.Update(ctx, "fb-uid-123", taskID, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
}

func TestTaskService_Delete_Success(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	existing := &entity.Task{ID: taskID, OwnerID: owner.ID, Text: "buy milk"}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(existing, nil)
	fx.taskRepo.EXPECT().Delete(ctx, taskID).Return(nil)
	fx.publisher.EXPECT().
		PublishTaskEvent(ctx, mock.AnythingOfType("*service.TaskEvent")).
		Run(func(ctx context.Context, event *service.TaskEvent) {
			assert.Equal(t, service.TaskEventDeleted, event.Type)
		}).
		Return(nil)

	err := fx.service.Delete(ctx, "fb-uid-123", taskID)

	require.NoError(t, err)
}

func TestTaskService_Delete_ForeignTask(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()
	foreign := &entity.Task{ID: taskID, OwnerID: uuid.New()}

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(foreign, nil)

	err := fx.service.Delete(ctx, "fb-uid-123", taskID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskOwnershipViolation))
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	owner := &entity.User{ID: uuid.New(), ExternalUID: "fb-uid-123"}
	taskID := uuid.New()

	fx.expectOwner(ctx, "fb-uid-123", owner)
	fx.taskRepo.EXPECT().FindByID(ctx, taskID).Return(nil, repository.ErrTaskNotFound)

	err := fx.service.Delete(ctx, "fb-uid-123", taskID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
}
