package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/settleapp/settle/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const actorKey contextKey = "actor"

// sessionCookie is the cookie browsers use instead of the Authorization
// header.
const sessionCookie = "accessToken"

// Actor extracts the authenticated user from the context.
// Returns nil if the request was not authenticated.
func Actor(ctx context.Context) *models.User {
	actor, _ := ctx.Value(actorKey).(*models.User)
	return actor
}

// authMiddleware validates the session token (Bearer header or cookie),
// resolves the full user record and adds it to the request context. The
// services downstream only ever see a resolved identity.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			writeErrorStatus(w, http.StatusUnauthorized, "authorization token required")
			return
		}

		claims, err := a.jwtManager.Validate(tokenString)
		if err != nil {
			writeErrorStatus(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := a.store.GetUserByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			writeErrorStatus(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// loggingMiddleware logs every request with its duration and status.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
