package payments

import "context"

// Customer mirrors the payment provider's customer record, trimmed to the
// fields the app needs.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// EphemeralKey is the short-lived credential scoping client-side access to
// one customer.
type EphemeralKey struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// Intent is the provider's stateful representation of a charge attempt.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"` // minor units
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Gateway is the payment-provider surface the HTTP handlers depend on.
// The Stripe implementation lives in stripe.go; tests substitute a fake.
type Gateway interface {
	// FindCustomerByEmail returns nil when no customer matches.
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, name, email string) (*Customer, error)
	CreateEphemeralKey(ctx context.Context, customerID string) (*EphemeralKey, error)
	// CreateIntent charges amount in minor units against the customer.
	CreateIntent(ctx context.Context, amount int64, customerID string) (*Intent, error)
	// AttachPaymentMethod binds a payment method to a customer and returns
	// the method id to confirm with.
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (string, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error)
}
