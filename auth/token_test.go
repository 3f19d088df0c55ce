package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/taskdash-go/apperror"
	"github.com/user/taskdash-go/config"
)

const testSecret = "test-secret-at-least-32-characters!!"

func newTestTokenService(duration time.Duration) *TokenService {
	return NewTokenService(&config.AuthConfig{
		JWTSecret:     testSecret,
		TokenDuration: duration,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(24 * time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenExpiryBoundary(t *testing.T) {
	const window = 24 * time.Hour
	issuedAt := time.Now()

	svc := newTestTokenService(window)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// One second before the window closes the token is still good.
	svc.now = func() time.Time { return issuedAt.Add(window - time.Second) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// One second after, it is dead.
	svc.now = func() time.Time { return issuedAt.Add(window + time.Second) }
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := newTestTokenService(time.Hour)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	verifier := NewTokenService(&config.AuthConfig{
		JWTSecret:     "a-completely-different-32-char-key!!",
		TokenDuration: time.Hour,
	})
	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenTamperedRejected(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "aaaa"
	_, err = svc.Verify(tampered)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tok)
		require.Error(t, err, "token %q", tok)
		assert.True(t, apperror.IsAuthError(err))
	}
}
