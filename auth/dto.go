// Data transfer objects for the auth endpoints. Validate tags are enforced at
// the API boundary before any business logic runs.
package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"Jane Doe"`
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"strongpassword123"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// PublicUser is the only user shape that ever leaves the API: no id, no
// timestamps, and certainly no password hash.
type PublicUser struct {
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"User registered successfully"`
}

// LoginResponse carries the issued bearer token and the public profile.
type LoginResponse struct {
	Message string     `json:"message" example:"Login successful"`
	Token   string     `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    PublicUser `json:"user"`
}

// ProfileResponse wraps the public profile for the /me endpoint.
type ProfileResponse struct {
	User PublicUser `json:"user"`
}
