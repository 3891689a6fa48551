package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/pkg/auth"
	"github.com/adilzhn/marketplace/pkg/logger"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user id in the request context.
	UserIDKey contextKey = "user_id"
	// EmailKey carries the authenticated user email in the request context.
	EmailKey contextKey = "email"
)

// Middleware decorates a handler func.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// AuthMiddleware validates the Bearer token and resolves it to a stored
// user before the protected handler runs. The acting identity always
// comes from the token, never from the request body.
func AuthMiddleware(repo domain.UserRepository) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondAuthError(w, "authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondAuthError(w, "invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondAuthError(w, "invalid token")
				return
			}

			user, err := repo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Warn(r.Context()).
					Err(err).
					Uint("user_id", claims.UserID).
					Msg("Token resolves to unknown user")
				respondAuthError(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, EmailKey, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func respondAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error:   message,
	})
}
