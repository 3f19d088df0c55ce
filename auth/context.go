package auth

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys, preventing collisions with
// values other packages might store on the same context.
type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// NewContextWithUserID returns a child context carrying the authenticated
// user's id. Only the middleware writes this.
func NewContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user's id set by the
// middleware. The bool reports whether a valid id was present.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
