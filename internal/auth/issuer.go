// Package auth provides token issuance and verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bistroboss/bistroboss/internal/model"
)

// Token lifetime is fixed; validity is purely cryptographic + time-based.
const tokenTTL = time.Hour

// Issuer errors.
var (
	ErrNoSecret     = errors.New("signing secret is not configured")
	ErrInvalidToken = errors.New("token is malformed or its signature does not verify")
	ErrExpired      = errors.New("token is expired")
)

// claims is the signed claim bundle. Only the subject's identity payload
// goes in; never secret material.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies signed, time-limited tokens.
// Tokens are stateless: nothing is persisted.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer. An empty secret is a startup
// misconfiguration and is rejected here so it fails fast.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for the given identity with a one-hour expiry.
// Pure function of the identity, the secret and the current time.
func (i *Issuer) Issue(identity model.Identity) (string, error) {
	now := i.now()
	c := claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and validates a token string.
// Returns ErrExpired when the token is past its expiry and
// ErrInvalidToken for any structural or signature failure.
func (i *Issuer) Verify(tokenString string) (model.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, ErrExpired
		}
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{Email: c.Email}, nil
}
