package usecase

import (
	"context"

	"taskdeck/internal/domain/entity"

	"github.com/google/uuid"
)

// TaskUsecase defines owner-scoped task operations. The owner is always
// resolved from the authenticated principal's external UID, never from a
// client-supplied identifier.
type TaskUsecase interface {
	// List returns the caller's tasks, oldest first. Empty slice when none.
	List(ctx context.Context, externalUID string) ([]*entity.Task, error)

	// Create adds a task for the caller. Text must be non-empty after trimming.
	Create(ctx context.Context, externalUID string, input *CreateTaskInput) (*entity.Task, error)

	// Update applies a partial update to the caller's task.
	Update(ctx context.Context, externalUID string, taskID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)

	// Delete removes the caller's task. Deleting an absent task reports
	// NotFound so double-delete races stay visible.
	Delete(ctx context.Context, externalUID string, taskID uuid.UUID) error
}

// --- Input DTOs ---

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTaskInput defines the partial task update. Each field is
// independently optional; absent fields are left untouched.
type UpdateTaskInput struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
