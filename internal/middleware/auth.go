package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

const userIDKey contextKey = "userID"

// Auth middleware authenticates requests via a Bearer JWT and stores the
// caller's user id in the context. Restaurant scope and role are not taken
// from the token: handlers re-resolve them from the store on every request,
// which keeps the users table the source of truth.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.WriteError(w, api.Errorf(api.KindUnauthenticated, "authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.WriteError(w, api.Errorf(api.KindUnauthenticated, "invalid authorization header format"))
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				api.WriteError(w, api.Errorf(api.KindUnauthenticated, "invalid or expired token"))
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				api.WriteError(w, api.Errorf(api.KindUnauthenticated, "invalid user id in token"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id stored by Auth.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID injects a user id into the context; used by tests and the
// websocket upgrade path, which authenticates via query parameter.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
