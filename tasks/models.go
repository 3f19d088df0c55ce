// Package tasks implements the task resource: the model, the
// ownership-scoped CRUD service, the persistence stores, and the HTTP
// handlers. Every read and write in this package is scoped to the
// authenticated caller; a task is visible to and mutable by its owner only.
package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Status is the fixed task state enumeration.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a task record. UserID is the owning identity, fixed at
// creation and immutable thereafter; no update path writes it. DueDate is an
// opaque client-supplied date string, stored as given.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	DueDate     *string   `json:"dueDate,omitempty"`
	UserID      uuid.UUID `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
