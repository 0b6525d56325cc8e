package services

import (
	"context"

	"todolist/internal/models"
)

// TaskStore defines the persistence operations used by TaskService.
// This allows switching between the MongoDB and in-memory implementations.
type TaskStore interface {
	// FindAll returns every task in insertion order
	FindAll(ctx context.Context) ([]models.Task, error)

	// Insert validates and persists a draft, returning the stored task
	Insert(ctx context.Context, draft models.TaskDraft) (*models.Task, error)

	// UpdateStatus sets the status of a task. Returns models.ErrTaskNotFound for unknown IDs.
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)

	// Delete removes a task and returns it. Returns models.ErrTaskNotFound for unknown IDs.
	Delete(ctx context.Context, id string) (*models.Task, error)

	// Close releases the underlying connection
	Close(ctx context.Context) error
}
