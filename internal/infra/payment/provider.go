// Package payment provides the subscription payment boundary. The production
// deployment talks to an external payment API; development uses a local mock.
package payment

import (
	"context"
	"errors"
)

// Sentinel errors for payment operations.
var (
	// ErrNotConfigured indicates no payment provider credentials are set.
	// Subscription requests fail until PAYMENT_API_KEY is configured.
	ErrNotConfigured = errors.New("payment provider not configured")

	// ErrPaymentDeclined indicates the provider rejected the charge.
	ErrPaymentDeclined = errors.New("payment declined")
)

// Provider charges an account for a subscription purchase.
type Provider interface {
	// Charge processes a subscription payment for the given account email
	// and returns a provider transaction ID on success.
	Charge(ctx context.Context, email string, amountCents int) (string, error)
}
