package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/auth"
)

// RequireSelf returns a route-specific guard for self-service lookups:
// the authenticated identity must match the email in the named URL
// parameter. It layers on Authenticate alone; it is not a role check.
// The comparison is exact and case-sensitive, like every email match.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				writeGuardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			email := chi.URLParam(r, param)
			if email == "" {
				email = r.URL.Query().Get(param)
			}
			if email == "" || email != identity.Email {
				writeGuardError(w, http.StatusForbidden, "FORBIDDEN", "Identity does not match")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
