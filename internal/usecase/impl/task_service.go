package impl

import (
	"context"
	"log/slog"
	"strings"

	"taskdeck/config"
	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
	"taskdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	userRepo  repository.UserRepository
	taskRepo  repository.TaskRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	TaskRepo  repository.TaskRepository
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		userRepo:  params.UserRepo,
		taskRepo:  params.TaskRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveOwner maps the authenticated external principal onto its local
// account. Every task operation goes through here; an unknown principal means
// the caller skipped registration.
func (srv *taskService) resolveOwner(ctx context.Context, externalUID string) (*entity.User, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "external uid is required")
	}

	owner, err := srv.userRepo.FindByExternalUID(ctx, externalUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "no local account for this identity")
		}

		return nil, errors.Wrap(err, "failed to resolve task owner")
	}

	return owner, nil
}

// List returns the caller's tasks ordered oldest first.
func (srv *taskService) List(ctx context.Context, externalUID string) ([]*entity.Task, error) {
	owner, err := srv.resolveOwner(ctx, externalUID)
	if err != nil {
		return nil, err
	}

	tasks, err := srv.taskRepo.FindByOwner(ctx, owner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// Create adds a new incomplete task for the caller.
func (srv *taskService) Create(ctx context.Context, externalUID string, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if input == nil || strings.TrimSpace(input.Text) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "task text must not be empty")
	}

	owner, err := srv.resolveOwner(ctx, externalUID)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		OwnerID:   owner.ID,
		Text:      strings.TrimSpace(input.Text),
		Completed: false,
	}
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "task owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.publishEvent(ctx, service.TaskEventCreated, task)
	srv.log(ctx).Debug("Task created", slog.Any("taskID", task.ID), slog.Any("ownerID", owner.ID))

	return task, nil
}

// Update applies a partial edit after verifying the caller owns the task.
func (srv *taskService) Update(ctx context.Context, externalUID string, taskID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if input == nil || (input.Text == nil && input.Completed == nil) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "no task fields supplied")
	}
	if input.Text != nil && strings.TrimSpace(*input.Text) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "task text must not be empty")
	}

	owner, err := srv.resolveOwner(ctx, externalUID)
	if err != nil {
		return nil, err
	}

	task, err := srv.findOwnedTask(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		task.Text = strings.TrimSpace(*input.Text)
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTaskNotFound, "task disappeared during update")
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	srv.publishEvent(ctx, service.TaskEventUpdated, task)

	return task, nil
}

// Delete removes a task after verifying ownership.
func (srv *taskService) Delete(ctx context.Context, externalUID string, taskID uuid.UUID) error {
	owner, err := srv.resolveOwner(ctx, externalUID)
	if err != nil {
		return err
	}

	task, err := srv.findOwnedTask(ctx, owner, taskID)
	if err != nil {
		return err
	}

	if err := srv.taskRepo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return errors.Wrap(domainerrors.ErrTaskNotFound, "task disappeared during delete")
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.publishEvent(ctx, service.TaskEventDeleted, task)
	srv.log(ctx).Debug("Task deleted", slog.Any("taskID", task.ID), slog.Any("ownerID", owner.ID))

	return nil
}

// findOwnedTask loads a task and enforces that it belongs to the caller. A
// foreign task is reported as an ownership violation, not as missing, so the
// caller learns the id is taken.
func (srv *taskService) findOwnedTask(ctx context.Context, owner *entity.User, taskID uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTaskNotFound, "task not found")
		}

		return nil, errors.Wrap(err, "failed to find task")
	}
	if task.OwnerID != owner.ID {
		return nil, errors.Wrap(domainerrors.ErrTaskOwnershipViolation, "task belongs to another account")
	}

	return task, nil
}

// publishEvent emits a task change notification. Publishing is best effort:
// the mutation already committed, so failures are logged and swallowed.
func (srv *taskService) publishEvent(ctx context.Context, eventType string, task *entity.Task) {
	event := &service.TaskEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      eventType,
		TaskID:    task.ID.String(),
		OwnerID:   task.OwnerID.String(),
		Text:      task.Text,
		Completed: task.Completed,
	}
	if err := srv.publisher.PublishTaskEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish task event",
			slog.String("type", eventType),
			slog.Any("taskID", task.ID),
			slog.Any("error", err))
	}
}
