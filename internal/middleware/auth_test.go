package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bistroboss/bistroboss/internal/auth"
	"github.com/bistroboss/bistroboss/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

// okHandler records whether it ran and echoes the identity it saw.
type okHandler struct {
	ran      bool
	identity model.Identity
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ran = true
	h.identity, _ = auth.IdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	next := &okHandler{}
	guard := Authenticate(AuthConfig{Logger: discardLogger(), Issuer: issuer})(next)

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !next.ran {
		t.Fatal("handler should have run")
	}
	if next.identity.Email != "user@x.com" {
		t.Errorf("expected identity attached, got %+v", next.identity)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	issuer := testIssuer(t)

	foreignIssuer, err := auth.NewIssuer("other-secret")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	foreign, err := foreignIssuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer form", header: "Token abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "wrong signature", header: "Bearer " + foreign},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := &okHandler{}
			guard := Authenticate(AuthConfig{Logger: discardLogger(), Issuer: issuer})(next)

			req := httptest.NewRequest(http.MethodGet, "/carts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if next.ran {
				t.Error("handler must not run on auth failure")
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON error envelope, got %s", ct)
			}
		})
	}
}

// staleVerifier simulates a token that was valid when issued but is
// past expiry at verification time.
type staleVerifier struct{}

func (staleVerifier) Verify(string) (model.Identity, error) {
	return model.Identity{}, auth.ErrExpired
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	next := &okHandler{}
	guard := Authenticate(AuthConfig{Logger: discardLogger(), Issuer: staleVerifier{}})(next)

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer some-old-token")
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rec.Code)
	}
	if next.ran {
		t.Error("handler must not run for expired token")
	}
}

func TestExtractBearerToken(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "lowercase scheme rejected", header: "bearer abc", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := extractBearerToken(req); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// Guard against clock-related flakiness: a token issued now must stay
// valid for the full request lifetime of these tests.
func TestAuthenticate_TokenFreshness(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := issuer.Verify(token); err != nil {
		t.Errorf("fresh token rejected: %v", err)
	}
}
