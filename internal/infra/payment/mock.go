package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"medium-digest/pkg/config"
)

// MockProvider simulates a payment provider for development and tests.
// Every charge succeeds and returns a generated transaction ID. It still
// requires an API key so that the configured/unconfigured distinction
// behaves like the real client.
type MockProvider struct {
	apiKey string
}

// NewMockProvider creates a mock provider with the given API key.
func NewMockProvider(apiKey string) *MockProvider {
	return &MockProvider{apiKey: apiKey}
}

// Charge simulates a successful payment and returns a transaction ID.
func (m *MockProvider) Charge(ctx context.Context, email string, amountCents int) (string, error) {
	if m.apiKey == "" {
		return "", ErrNotConfigured
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	transactionID := "mock-" + uuid.New().String()

	slog.InfoContext(ctx, "mock payment charged",
		slog.String("email", email),
		slog.Int("amount_cents", amountCents),
		slog.String("transaction_id", transactionID))

	return transactionID, nil
}

// NewFromEnv builds the payment provider from environment variables.
//
// Environment Variables:
//   - PAYMENT_API_KEY: provider credential (required for charges to succeed)
//   - PAYMENT_API_URL: real charge endpoint; when unset the mock is used
//   - PAYMENT_TIMEOUT: HTTP timeout for the real client (default 10s)
func NewFromEnv() Provider {
	apiKey := config.GetEnvString("PAYMENT_API_KEY", "")
	endpoint := config.GetEnvString("PAYMENT_API_URL", "")

	if endpoint != "" {
		slog.Info("using HTTP payment provider", slog.String("endpoint", endpoint))
		return NewHTTPProvider(ClientConfig{
			APIKey:   apiKey,
			Endpoint: endpoint,
			Timeout:  config.GetEnvDuration("PAYMENT_TIMEOUT", 10*time.Second),
		})
	}

	slog.Info("using mock payment provider",
		slog.Bool("configured", apiKey != ""))
	return NewMockProvider(apiKey)
}
