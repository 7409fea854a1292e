package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single todo item. A task belongs to exactly one user; deleting the
// owner removes its tasks through the persistence layer's cascade, never
// through application code walking the list.
type Task struct {
	ID        uuid.UUID // Surrogate identifier, primary key.
	OwnerID   uuid.UUID // Links this task to the User it belongs to. Immutable.
	Text      string    // The todo text. Non-empty after trimming.
	Completed bool      // Whether the task is done. Defaults to false.
	CreatedAt time.Time // Timestamp of when this task was created.
	UpdatedAt time.Time // Timestamp of the last modification to this task.
}
