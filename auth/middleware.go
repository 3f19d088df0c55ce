package auth

import (
	"net/http"
	"strings"

	"github.com/user/taskdash-go/apperror"
)

// Middleware returns the access guard for protected routes. It extracts the
// bearer token from the Authorization header, verifies it, and attaches the
// resolved user id to the request context. It is a pure gate: it never
// touches the stores, and each request is judged independently.
func Middleware(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
				return
			}

			// Expected shape: "Bearer <token>".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				WriteError(w, r, apperror.NewAuthError("Not authorized", nil))
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
