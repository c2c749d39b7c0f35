package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/utils"
)

type contextKey string

const UserIDKey contextKey = "userID"

// SessionCookie carries the signed session token.
const SessionCookie = "token"

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// UserID returns the authenticated user's id put there by AuthMiddleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

// WithUserID is used by AuthMiddleware and by tests driving handlers directly.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// AuthMiddleware rejects requests without a valid session cookie. notAuth
// is the error the authenticator uses for an invalid session; anything else
// is a server failure.
func AuthMiddleware(auth Authenticator, notAuth error, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				utils.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, err := auth.Authenticate(r.Context(), cookie.Value)
			if errors.Is(err, notAuth) {
				utils.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if err != nil {
				logging.FromContext(r.Context(), log).Error(r.Context(), "session lookup failed", "error", err)
				utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
