package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeIntents struct {
	got *stripe.PaymentIntentParams
	err error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_1_secret_x"}, nil
}

func TestStripe_CreateIntent(t *testing.T) {
	fake := &fakeIntents{}
	s := &Stripe{intents: fake}

	secret, err := s.CreateIntent(context.Background(), 1299, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", secret)
	assert.EqualValues(t, 1299, *fake.got.Amount)
	assert.Equal(t, "usd", *fake.got.Currency)
	assert.Equal(t, []*string{stripe.String("card")}, fake.got.PaymentMethodTypes)
	assert.NotNil(t, fake.got.Context)
}

func TestStripe_CreateIntentError(t *testing.T) {
	s := &Stripe{intents: &fakeIntents{err: &stripe.Error{Code: stripe.ErrorCodeCardDeclined, Msg: "declined"}}}

	_, err := s.CreateIntent(context.Background(), 100, "usd")
	require.ErrorContains(t, err, "declined")

	s = &Stripe{intents: &fakeIntents{err: errors.New("timeout")}}
	_, err = s.CreateIntent(context.Background(), 100, "usd")
	require.ErrorContains(t, err, "timeout")
}

func TestStripe_NotConfigured(t *testing.T) {
	_, err := NewStripe("").CreateIntent(context.Background(), 100, "usd")
	require.ErrorIs(t, err, ErrNotConfigured)
}
