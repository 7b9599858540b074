package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bistroboss/bistroboss/internal/auth"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// RoleFinder looks up a principal's record by email.
type RoleFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// RoleCache is an optional read-through cache for role lookups.
type RoleCache interface {
	GetRole(ctx context.Context, email string) (model.Role, bool)
	SetRole(ctx context.Context, email string, role model.Role) error
}

// AdminConfig holds configuration for the authorization guard.
type AdminConfig struct {
	Logger *slog.Logger
	Users  RoleFinder
	Cache  RoleCache
}

// RequireAdmin returns the authorization guard. It must be applied
// after Authenticate: the identity attached there is resolved against
// the user store, and anything but the admin role is rejected with 403.
// A request that somehow reaches this guard without an identity is a
// guard-ordering violation and fails closed with 401.
func RequireAdmin(cfg AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				writeGuardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			role, err := cfg.lookupRole(r.Context(), identity.Email)
			if err != nil {
				if !errors.Is(err, repository.ErrUserNotFound) {
					cfg.Logger.Error("role lookup failed",
						slog.String("email", identity.Email),
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				writeGuardError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
				return
			}

			if role != model.RoleAdmin {
				cfg.Logger.Warn("authorization failed",
					slog.String("email", identity.Email),
					slog.String("role", string(role)),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeGuardError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// lookupRole resolves a role through the cache, falling back to the
// user store on a miss.
func (cfg AdminConfig) lookupRole(ctx context.Context, email string) (model.Role, error) {
	if cfg.Cache != nil {
		if role, ok := cfg.Cache.GetRole(ctx, email); ok {
			return role, nil
		}
	}

	user, err := cfg.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if cfg.Cache != nil {
		_ = cfg.Cache.SetRole(ctx, email, user.Role)
	}
	return user.Role, nil
}
