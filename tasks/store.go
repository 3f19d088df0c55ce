package tasks

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no task matches the lookup.
var ErrNotFound = errors.New("task not found")

// TaskStore is the narrow persistence interface for tasks. FindByID is
// deliberately not owner-filtered: the service needs the distinction between
// "does not exist" and "exists but belongs to someone else".
type TaskStore interface {
	Insert(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
