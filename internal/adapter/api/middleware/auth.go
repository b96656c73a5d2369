package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/token"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth is a middleware factory that returns a new authentication middleware.
// It validates the bearer token issued by the session provider and attaches
// the resolved actor to the request context. Everything behind it can assume
// an identity is present; membership and capability checks stay with the
// guard.
func Auth(jwtSecret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("missing bearer token", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := token.Validate(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				logger.Warn("invalid session token", "error", err, "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			actor := domain.Actor{
				UserID:   claims.UserID,
				TenantID: claims.TenantID,
				Role:     claims.Role,
			}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the actor attached by Auth.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
