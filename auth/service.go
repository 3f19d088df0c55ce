package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskdash-go/apperror"
)

// Service orchestrates registration, login, and profile lookup. It owns the
// only code path that ever touches a plaintext password: the password is
// hashed right here in Register — an explicit call, not a hidden lifecycle
// hook — and only its digest reaches the store.
type Service struct {
	store      UserStore
	tokens     *TokenService
	bcryptCost int
}

// NewService creates an auth Service.
func NewService(store UserStore, tokens *TokenService, bcryptCost int) *Service {
	return &Service{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user identity. A taken email yields a Conflict
// whether it is caught by the friendly pre-check or by the store's unique
// constraint on insert; the constraint is what actually guarantees uniqueness
// under concurrent registrations.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.NewValidationError("Name, Email, and Password are required", nil)
	}

	email := normalizeEmail(req.Email)

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, apperror.NewConflictError("User already exists", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperror.NewDatabaseError("failed to check existing user", err)
	}

	digest, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		HashedPassword: digest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("User already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	slog.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies credentials and issues a bearer token. An unknown email and
// a wrong password return the same status and message, so a caller cannot
// probe which emails are registered.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *User, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, apperror.NewValidationError("Email and Password are required", nil)
	}

	user, err := s.store.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, apperror.NewInvalidCredentialsError("Invalid credentials", nil)
		}
		slog.Error("login lookup failed", slog.String("error", err.Error()))
		return "", nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(req.Password, user.HashedPassword) {
		return "", nil, apperror.NewInvalidCredentialsError("Invalid credentials", nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, apperror.NewInternalError("failed to issue token", err)
	}

	return token, user, nil
}

// Profile returns the user behind an authenticated id. The identity can have
// vanished between token issuance and this call, which surfaces as NotFound.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

// normalizeEmail keeps stored emails in a consistent form. Case is preserved
// as stored; only surrounding whitespace is dropped.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
