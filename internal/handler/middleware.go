package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session_id"

type contextKey int

const identityKey contextKey = iota

// IdentityFromContext returns the identity attached by RequireSession.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// RequireSession is the auth gate: it resolves the session cookie against
// the session store on every request and rejects with 401 when no valid
// session is attached. The downstream handler is only invoked on success.
func RequireSession(sessions ports.SessionStore, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				respondWithError(w, http.StatusUnauthorized, "no autorizado", logger)
				return
			}

			identity, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				logger.Error("failed to resolve session", "error", err)
				respondWithError(w, http.StatusInternalServerError, "error en el servidor", logger)
				return
			}
			if identity == nil {
				respondWithError(w, http.StatusUnauthorized, "no autorizado", logger)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs every HTTP request with its status and duration.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the ResponseWriter to capture the status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
