package service

import (
	"context"
)

// Task event types published on mutation.
const (
	TaskEventCreated = "task.created"
	TaskEventUpdated = "task.updated"
	TaskEventDeleted = "task.deleted"
)

// TaskEvent notifies interested consumers that a task changed. The relational
// store stays the single source of truth; this is a fanout hook for push
// channels, never a second copy of the data.
type TaskEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`
	TaskID    string `json:"task_id"`
	OwnerID   string `json:"owner_id"`
	Text      string `json:"text,omitempty"`
	Completed bool   `json:"completed"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishTaskEvent publishes a task change event for async fanout
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
