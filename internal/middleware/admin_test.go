package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bistroboss/bistroboss/internal/auth"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// fakeRoleFinder serves user records from a map.
type fakeRoleFinder struct {
	users   map[string]*model.User
	lookups int
}

func (f *fakeRoleFinder) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.lookups++
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// memRoleCache is an in-process RoleCache.
type memRoleCache struct {
	roles map[string]model.Role
}

func (m *memRoleCache) GetRole(_ context.Context, email string) (model.Role, bool) {
	role, ok := m.roles[email]
	return role, ok
}

func (m *memRoleCache) SetRole(_ context.Context, email string, role model.Role) error {
	m.roles[email] = role
	return nil
}

func adminGuard(users RoleFinder, cache RoleCache) func(http.Handler) http.Handler {
	return RequireAdmin(AdminConfig{Logger: discardLogger(), Users: users, Cache: cache})
}

func authedRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	ctx := auth.ContextWithIdentity(req.Context(), model.Identity{Email: email})
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	users := &fakeRoleFinder{users: map[string]*model.User{
		"admin@x.com": {Email: "admin@x.com", Role: model.RoleAdmin},
		"a@x.com":     {Email: "a@x.com", Role: model.RoleDefault},
	}}

	testCases := []struct {
		name       string
		email      string
		wantStatus int
		wantRan    bool
	}{
		{name: "admin admitted", email: "admin@x.com", wantStatus: http.StatusOK, wantRan: true},
		{name: "default role forbidden", email: "a@x.com", wantStatus: http.StatusForbidden},
		{name: "unknown principal forbidden", email: "ghost@x.com", wantStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := &okHandler{}
			guard := adminGuard(users, nil)(next)

			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, authedRequest(tc.email))

			if rec.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if next.ran != tc.wantRan {
				t.Errorf("handler ran = %v, want %v", next.ran, tc.wantRan)
			}
		})
	}
}

func TestRequireAdmin_WithoutAuthentication(t *testing.T) {
	// The authorization guard must never admit a request that did not
	// pass authentication first. No identity in context means the
	// ordering was violated; fail closed without touching the store.
	users := &fakeRoleFinder{users: map[string]*model.User{}}
	next := &okHandler{}
	guard := adminGuard(users, nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if next.ran {
		t.Error("handler must not run")
	}
	if users.lookups != 0 {
		t.Error("store must not be consulted without a verified identity")
	}
}

func TestRequireAdmin_RoleCache(t *testing.T) {
	users := &fakeRoleFinder{users: map[string]*model.User{
		"admin@x.com": {Email: "admin@x.com", Role: model.RoleAdmin},
	}}
	cache := &memRoleCache{roles: map[string]model.Role{}}
	guard := adminGuard(users, cache)(&okHandler{})

	// First request misses the cache and hits the store.
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, authedRequest("admin@x.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users.lookups != 1 {
		t.Fatalf("expected 1 store lookup, got %d", users.lookups)
	}

	// Second request is served from the cache.
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, authedRequest("admin@x.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users.lookups != 1 {
		t.Errorf("expected cached lookup, store hit %d times", users.lookups)
	}
}

func TestGuardChain_AuthPrecedesAuthz(t *testing.T) {
	// Full chain: a request with no token must be rejected by the
	// authentication guard; the authorization guard must never execute.
	issuer := testIssuer(t)
	users := &fakeRoleFinder{users: map[string]*model.User{}}

	next := &okHandler{}
	chain := Authenticate(AuthConfig{Logger: discardLogger(), Issuer: issuer})(
		adminGuard(users, nil)(next),
	)

	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if users.lookups != 0 {
		t.Error("authorization guard ran without authentication")
	}
	if next.ran {
		t.Error("handler must not run")
	}
}

func TestGuardChain_DefaultRoleGetsForbidden(t *testing.T) {
	// Scenario: a@x.com holds the default role and presents a valid
	// token; the chain must answer 403, not 401.
	issuer := testIssuer(t)
	token, err := issuer.Issue(model.Identity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	users := &fakeRoleFinder{users: map[string]*model.User{
		"a@x.com": {Email: "a@x.com", Role: model.RoleDefault},
	}}

	next := &okHandler{}
	chain := Authenticate(AuthConfig{Logger: discardLogger(), Issuer: issuer})(
		adminGuard(users, nil)(next),
	)

	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if next.ran {
		t.Error("handler must not run")
	}
}
