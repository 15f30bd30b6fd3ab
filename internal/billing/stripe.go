// Package billing talks to the external payment provider. The provider is
// opaque to the rest of the system: it takes an amount and hands back a
// client secret that the frontend uses to complete the charge.
package billing

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentCreator requests a payment intent for a price in major currency
// units and returns the provider's client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// StripeClient implements IntentCreator against the Stripe API.
type StripeClient struct {
	api *client.API
}

var _ IntentCreator = (*StripeClient)(nil)

// NewStripeClient creates a client with its own API handle; nothing is kept
// in package-level state.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a card payment intent in USD. The amount is converted
// to cents the way the checkout frontend expects: truncated, not rounded.
func (c *StripeClient) CreateIntent(_ context.Context, price float64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(price * 100)),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
