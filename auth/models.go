// Package auth implements authentication and authorization: user registration,
// login, bearer-token issuance and verification, and the request guard that
// resolves a token back to a user identity.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user identity as stored and as used by business logic.
// The hashed password is excluded from JSON so it can never ride along in an
// API response by accident.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Public returns the client-facing view of the user: name and email only.
func (u *User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email}
}
