// Package payment adapts the card processor to service.PaymentProvider.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// ErrNotConfigured is returned when no secret key was supplied.
var ErrNotConfigured = errors.New("payment provider not configured")

// intentCreator is the slice of the Stripe client the provider uses.
type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Stripe creates card-only payment intents.
type Stripe struct {
	intents intentCreator
}

// NewStripe returns a provider authenticated with secretKey. An empty key
// yields a provider whose every call fails with ErrNotConfigured.
func NewStripe(secretKey string) *Stripe {
	if secretKey == "" {
		return &Stripe{}
	}
	return &Stripe{intents: &paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: secretKey,
	}}
}

// CreateIntent creates an intent for amountMinor units of currency and
// returns its client secret.
func (s *Stripe) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	if s.intents == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.intents.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) {
			return "", fmt.Errorf("stripe %s: %s", se.Code, se.Msg)
		}
		return "", err
	}
	return pi.ClientSecret, nil
}
