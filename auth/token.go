package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/taskdash-go/apperror"
	"github.com/user/taskdash-go/config"
)

// Claims is the JWT payload: the owning user's id plus the registered claims
// (expiry, issued-at). Nothing else goes into a token, so verification never
// needs the store.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: validity is purely a function of the signature and
// the embedded expiry, so verification cost does not grow with the number of
// active sessions and there is no server-side revocation.
type TokenService struct {
	secret   []byte
	duration time.Duration

	// now is swappable in tests to probe the expiry boundary.
	now func() time.Time
}

// NewTokenService creates a TokenService from the auth configuration. The
// secret's minimum length is enforced at config load, before this runs.
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
		now:      time.Now,
	}
}

// Issue signs a token for userID expiring after the configured window.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature against the server secret and its
// expiry against the current time, and returns the user id it carries.
// Every failure mode — malformed, bad signature, expired, missing claim —
// comes back as an AuthError; callers need not tell them apart.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return uuid.Nil, apperror.NewAuthError("Invalid or expired token", err)
	}
	if !token.Valid {
		return uuid.Nil, apperror.NewAuthError("Invalid or expired token", nil)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, apperror.NewAuthError("Invalid or expired token", err)
	}
	return userID, nil
}
