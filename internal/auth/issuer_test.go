package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bistroboss/bistroboss/internal/model"
)

func newTestIssuer(t *testing.T, secret string) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(secret)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("")
	if !errors.Is(err, ErrNoSecret) {
		t.Errorf("expected ErrNoSecret, got %v", err)
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, "test-secret")

	testCases := []struct {
		name  string
		email string
	}{
		{name: "plain address", email: "user@x.com"},
		{name: "case preserved", email: "User@X.com"},
		{name: "plus address", email: "a+tag@x.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := issuer.Issue(model.Identity{Email: tc.email})
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}

			identity, err := issuer.Verify(token)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if identity.Email != tc.email {
				t.Errorf("expected email %q, got %q", tc.email, identity.Email)
			}
		})
	}
}

func TestIssuer_Expiry(t *testing.T) {
	issuer := newTestIssuer(t, "test-secret")

	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	testCases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "valid just before expiry", now: issued.Add(time.Hour - time.Second), wantErr: nil},
		{name: "expired at exactly one hour", now: issued.Add(time.Hour + time.Second), wantErr: ErrExpired},
		{name: "expired long after", now: issued.Add(48 * time.Hour), wantErr: ErrExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issuer.now = func() time.Time { return tc.now }
			_, err := issuer.Verify(token)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIssuer_Verify_Invalid(t *testing.T) {
	issuer := newTestIssuer(t, "test-secret")

	valid, err := issuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherIssuer := newTestIssuer(t, "a-different-secret")
	foreign, err := otherIssuer.Issue(model.Identity{Email: "user@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "tampered payload", token: tamper(valid)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Verify(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// tamper flips a character in the payload segment of a JWT.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
