package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Store sentinel errors. The postgres and in-memory implementations both map
// their native failures onto these, so the service layer never inspects
// driver errors.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert violates email uniqueness.
	// The store is the final arbiter of uniqueness; any pre-check in the
	// service is only an optimization for a friendlier error path.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the narrow persistence interface for user identities. Keeping
// it this small makes the store technology swappable and mockable in tests.
type UserStore interface {
	Insert(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
