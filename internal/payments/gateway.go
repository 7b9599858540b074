// Package payments wraps the external payment-gateway collaborator.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrNoAPIKey is returned when the gateway is constructed without credentials.
var ErrNoAPIKey = errors.New("payment gateway API key is not configured")

// Gateway creates payment intents with an external processor.
// Retry and idempotency policy belong to the processor, not here.
type Gateway interface {
	// CreateIntent registers an intended payment of amount minor units
	// (e.g. cents) and returns the client secret the frontend uses to
	// complete the payment out-of-band.
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a gateway client with the given secret key.
func NewStripeGateway(apiKey string) (*StripeGateway, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api}, nil
}

// CreateIntent creates a card payment intent and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
