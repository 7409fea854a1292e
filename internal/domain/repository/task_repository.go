// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task row matches the lookup key.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByID retrieves a single task by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// FindByOwner retrieves all tasks belonging to a user, oldest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)

	// Create persists a new task entity to the storage.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task entity in the storage.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task row. Deleting an absent task returns ErrTaskNotFound
	// so callers can detect double-delete races.
	Delete(ctx context.Context, id uuid.UUID) error
}
