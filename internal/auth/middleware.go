package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor returns a context carrying the acting admin's e-mail.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the acting admin, or "system" outside a request.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return "system"
}

// RequireAdmin rejects requests without a valid bearer token.
// WebSocket clients may pass the token as ?token= since browsers cannot set headers.
func RequireAdmin(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenString == "" {
				tokenString = r.URL.Query().Get("token")
			}
			if tokenString == "" {
				httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorBody{Error: "no token provided"})
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorBody{Error: "invalid or expired token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.Email)))
		})
	}
}
