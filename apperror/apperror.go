// Package apperror defines a centralized system for application-specific errors.
// Every failure that reaches an HTTP handler is classified here, so that status
// codes and response bodies stay consistent across the whole API and internal
// detail never leaks to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// ValidationError represents malformed or missing caller input.
	ValidationError
	// BadRequestError represents a generic bad request.
	BadRequestError
	// ConflictError represents a uniqueness violation, e.g. an email that is
	// already registered.
	ConflictError
	// InvalidCredentialsError represents a failed login. Deliberately a single
	// kind regardless of whether the email was unknown or the password wrong.
	InvalidCredentialsError
	// AuthError represents a missing, invalid, or expired bearer token.
	AuthError
	// ForbiddenError represents an authenticated caller acting on a resource
	// they do not own.
	ForbiddenError
	// NotFoundError represents a resource that does not exist.
	NotFoundError
	// DatabaseError represents an error originating from the data store.
	DatabaseError
	// ConfigError represents an error in application configuration.
	ConfigError
	// InternalError represents anything unexpected.
	InternalError
)

// AppError is the application's error type. It carries a user-facing Message
// and an optional underlying error kept for server-side logs only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error, never serialized to clients
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is / errors.As can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		// Existing clients of this API receive 400 for a taken email, not the
		// conventional 409, so the mapping is kept.
		return http.StatusBadRequest
	case InvalidCredentialsError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Generic factory; the typed constructors
// below are preferred at call sites.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewInvalidCredentialsError creates a new InvalidCredentialsError.
func NewInvalidCredentialsError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidCredentialsError, message, underlyingError)
}

// NewAuthError creates a new AuthError (token problems, 401).
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewForbiddenError creates a new ForbiddenError (ownership problems, 403).
func NewForbiddenError(message string, underlyingError error) *AppError {
	return NewAppError(ForbiddenError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// ErrorResponse is the JSON body every API failure produces: a single
// human-readable message, nothing else.
type ErrorResponse struct {
	Message string `json:"message" example:"A description of the error"`
}

// ToResponse converts an AppError to its client-facing representation. Only the
// Message field crosses the wire; the wrapped Err stays in server logs.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == InvalidCredentialsError
}

// IsValidationError checks if an error is a Validation error.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
