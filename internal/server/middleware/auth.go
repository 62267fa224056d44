// Package middleware holds the HTTP middleware chain: bearer-token
// authentication, request logging, and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dvolkov8/eventide/internal/logging"
)

type contextKey string

// userIDKey holds the authenticated user id in the request context.
const userIDKey contextKey = "userID"

// TokenVerifier checks an access token and returns the user id it is bound
// to. Implemented by auth.Issuer.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserID returns the authenticated user id stored by Auth, or "" when the
// request did not pass authentication.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user id. Exported for
// handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth rejects requests without a valid "Bearer <token>" Authorization
// header and injects the verified user id into the request context.
func Auth(logger logging.Logger, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn(r.Context(), "access token rejected", "error", err)
				http.Error(w, "unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
