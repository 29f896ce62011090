package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/ephemeralkey"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/paymentmethod"
)

// Pinned Stripe API version for ephemeral keys; the mobile SDK expects it.
const stripeAPIVersion = "2024-06-20"

const currency = string(stripe.CurrencyUSD)

// StripeGateway implements Gateway on stripe-go.
type StripeGateway struct{}

// NewStripeGateway initializes the package-global stripe client key.
func NewStripeGateway(apiKey string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{}
}

func (s *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	iter := customer.List(params)
	for iter.Next() {
		c := iter.Customer()
		return &Customer{ID: c.ID, Name: c.Name, Email: c.Email}, nil
	}
	return nil, iter.Err()
}

func (s *StripeGateway) CreateCustomer(ctx context.Context, name, email string) (*Customer, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	}
	params.Context = ctx
	c, err := customer.New(params)
	if err != nil {
		return nil, err
	}
	return &Customer{ID: c.ID, Name: c.Name, Email: c.Email}, nil
}

func (s *StripeGateway) CreateEphemeralKey(ctx context.Context, customerID string) (*EphemeralKey, error) {
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(stripeAPIVersion),
	}
	params.Context = ctx
	k, err := ephemeralkey.New(params)
	if err != nil {
		return nil, err
	}
	return &EphemeralKey{ID: k.ID, Secret: k.Secret}, nil
}

func (s *StripeGateway) CreateIntent(ctx context.Context, amount int64, customerID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (s *StripeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (string, error) {
	params := &stripe.PaymentMethodAttachParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	pm, err := paymentmethod.Attach(paymentMethodID, params)
	if err != nil {
		return "", err
	}
	return pm.ID, nil
}

func (s *StripeGateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error) {
	params := &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String(paymentMethodID)}
	params.Context = ctx
	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}
