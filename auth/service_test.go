package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/taskdash-go/apperror"
)

func newTestService() *Service {
	// MinCost keeps the bcrypt work negligible in tests.
	return NewService(NewMemoryUserStore(), newTestTokenService(24*time.Hour), bcrypt.MinCost)
}

func register(t *testing.T, svc *Service, name, email, password string) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterRequest{
		Name: name, Email: email, Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterSuccess(t *testing.T) {
	svc := newTestService()
	user := register(t, svc, "A", "a@x.com", "secret1")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.HashedPassword)
	assert.True(t, CheckPassword("secret1", user.HashedPassword))
}

func TestRegisterEmptyFields(t *testing.T) {
	svc := newTestService()
	cases := []RegisterRequest{
		{Name: "", Email: "a@x.com", Password: "secret1"},
		{Name: "A", Email: "", Password: "secret1"},
		{Name: "A", Email: "a@x.com", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
		appErr, _ := apperror.FromError(err)
		assert.Equal(t, "Name, Email, and Password are required", appErr.Message)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	svc := newTestService()
	register(t, svc, "A", "a@x.com", "secret1")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "B", Email: "a@x.com", Password: "other66",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestRegisterConstraintViolationIsConflict(t *testing.T) {
	// The store's uniqueness constraint is the final arbiter: even when the
	// friendly pre-check is bypassed (as under a registration race), the
	// insert failure must surface as the same Conflict.
	store := NewMemoryUserStore()
	svc := NewService(store, newTestTokenService(time.Hour), bcrypt.MinCost)

	require.NoError(t, store.Insert(context.Background(), &User{
		ID: uuid.New(), Name: "A", Email: "a@x.com", HashedPassword: "x",
	}))

	err := store.Insert(context.Background(), &User{
		ID: uuid.New(), Name: "B", Email: "a@x.com", HashedPassword: "y",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name: "B", Email: "a@x.com", Password: "secret1",
	})
	assert.True(t, apperror.IsConflictError(err))
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService()
	register(t, svc, "A", "a@x.com", "secret1")

	token, user, err := svc.Login(context.Background(), LoginRequest{
		Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)

	// The token resolves back to this user.
	userID, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	// Unknown email and wrong password must return the same kind and the
	// same message, or callers could probe which emails are registered.
	svc := newTestService()
	register(t, svc, "A", "a@x.com", "secret1")

	_, _, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@x.com", Password: "secret1",
	})
	_, _, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email: "a@x.com", Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, apperror.IsInvalidCredentials(unknownErr))
	assert.True(t, apperror.IsInvalidCredentials(wrongErr))

	unknownApp, _ := apperror.FromError(unknownErr)
	wrongApp, _ := apperror.FromError(wrongErr)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.StatusCode(), wrongApp.StatusCode())
	assert.Equal(t, "Invalid credentials", unknownApp.Message)
}

func TestLoginEmptyFields(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "", Password: ""})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestProfile(t *testing.T) {
	svc := newTestService()
	user := register(t, svc, "A", "a@x.com", "secret1")

	profile, err := svc.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", profile.Name)
	assert.Equal(t, "a@x.com", profile.Email)

	_, err = svc.Profile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPublicViewOmitsHash(t *testing.T) {
	user := &User{Name: "A", Email: "a@x.com", HashedPassword: "digest"}
	public := user.Public()
	assert.Equal(t, PublicUser{Name: "A", Email: "a@x.com"}, public)
}
