package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/internal/resilience/retry"
)

// ClientConfig contains configuration for the HTTP payment client.
type ClientConfig struct {
	// APIKey authenticates against the payment API.
	APIKey string

	// Endpoint is the charge endpoint URL.
	Endpoint string

	// Timeout is the HTTP request timeout for payment API calls.
	Timeout time.Duration
}

// HTTPProvider charges subscriptions through an external payment API.
// Transient failures are retried with backoff; repeated failures open the
// circuit breaker.
type HTTPProvider struct {
	config         ClientConfig
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewHTTPProvider creates a payment client with the specified configuration.
func NewHTTPProvider(config ClientConfig) *HTTPProvider {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &HTTPProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.PaymentAPIConfig()),
		retryConfig:    retry.PaymentAPIConfig(),
	}
}

// chargeRequest is the JSON payload sent to the payment API.
type chargeRequest struct {
	Email       string `json:"email"`
	AmountCents int    `json:"amount_cents"`
	Description string `json:"description"`
}

// chargeResponse is the JSON response from the payment API.
type chargeResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// Charge processes a subscription payment and returns the transaction ID.
func (p *HTTPProvider) Charge(ctx context.Context, email string, amountCents int) (string, error) {
	if p.config.APIKey == "" {
		return "", ErrNotConfigured
	}

	var transactionID string

	retryErr := retry.WithBackoff(ctx, p.retryConfig, func() error {
		cbResult, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.doCharge(ctx, email, amountCents)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("payment api circuit breaker open, request rejected",
					slog.String("service", "payment-api"),
					slog.String("state", p.circuitBreaker.StateString()))
				return fmt.Errorf("payment api unavailable: circuit breaker open")
			}
			return err
		}
		transactionID = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("payment charge failed: %w", retryErr)
	}

	return transactionID, nil
}

// doCharge performs a single charge request without retry or circuit breaker.
func (p *HTTPProvider) doCharge(ctx context.Context, email string, amountCents int) (string, error) {
	payload := chargeRequest{
		Email:       email,
		AmountCents: amountCents,
		Description: "summarization quota top-up",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal charge payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	// Card declines are terminal, not retryable.
	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity {
		return "", fmt.Errorf("%w: %s", ErrPaymentDeclined, string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("payment api error: %s", string(body)),
		}
	}

	var parsed chargeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode charge response: %w", err)
	}
	if parsed.TransactionID == "" {
		return "", fmt.Errorf("payment api returned empty transaction id")
	}

	return parsed.TransactionID, nil
}
