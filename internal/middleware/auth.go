package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bistroboss/bistroboss/internal/auth"
	"github.com/bistroboss/bistroboss/internal/model"
)

// TokenVerifier decodes and validates a bearer token.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// AuthConfig holds configuration for the authentication guard.
type AuthConfig struct {
	Logger *slog.Logger
	Issuer TokenVerifier
}

// Authenticate returns the authentication guard. It requires an
// "Authorization: Bearer <token>" header, verifies the token and
// attaches the decoded identity to the request context. The guard
// never mutates state: it only admits or rejects. Missing, malformed
// and expired tokens all fail closed with 401.
func Authenticate(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeGuardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
				return
			}

			identity, err := cfg.Issuer.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrExpired) {
					reason = "expired_token"
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeGuardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns "" when the header is absent or not in Bearer form.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// writeGuardError writes a guard rejection in the standard envelope.
func writeGuardError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(fmt.Sprintf(`{"error":{"code":"%s","message":"%s"}}`, code, message)))
}
