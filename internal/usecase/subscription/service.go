// Package subscription implements the quota top-up use case. A successful
// payment through the configured provider grants the account a fixed block
// of additional summarization uses.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/infra/payment"
	"medium-digest/internal/repository"
	"medium-digest/internal/usecase/account"
	"medium-digest/pkg/config"
)

// Sentinel errors for subscription operations.
var (
	// ErrPaymentFailed indicates the payment provider rejected or could
	// not process the charge. No uses are granted.
	ErrPaymentFailed = errors.New("subscription payment failed")
)

// Result carries the outcome of a successful subscription purchase.
type Result struct {
	TransactionID string
	GrantedUses   int
	RemainingUses int
}

// Service processes subscription purchases.
type Service struct {
	Resolver account.Resolver
	Accounts repository.AccountRepository
	Payments payment.Provider

	// PriceCents is the charge amount. Defaults via NewService.
	PriceCents int
}

// NewService builds a subscription service with the price loaded from
// SUBSCRIPTION_PRICE_CENTS (default 500, i.e. $5.00).
func NewService(resolver account.Resolver, accounts repository.AccountRepository, payments payment.Provider) *Service {
	return &Service{
		Resolver:   resolver,
		Accounts:   accounts,
		Payments:   payments,
		PriceCents: config.GetEnvInt("SUBSCRIPTION_PRICE_CENTS", 500),
	}
}

// Subscribe charges the resolved account and grants it additional uses.
// The charge happens before the grant; a failed grant after a successful
// charge is logged loudly since it needs manual reconciliation.
func (s *Service) Subscribe(ctx context.Context) (*Result, error) {
	acct, err := s.Resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	transactionID, err := s.Payments.Charge(ctx, acct.Email, s.PriceCents)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	remaining, err := s.Accounts.AddUses(ctx, acct.ID, entity.SubscriptionGrant)
	if err != nil {
		slog.ErrorContext(ctx, "payment succeeded but quota grant failed, needs reconciliation",
			slog.String("transaction_id", transactionID),
			slog.Int64("account_id", acct.ID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("grant uses after payment %s: %w", transactionID, err)
	}

	slog.InfoContext(ctx, "subscription purchased",
		slog.Int64("account_id", acct.ID),
		slog.String("transaction_id", transactionID),
		slog.Int("granted_uses", entity.SubscriptionGrant),
		slog.Int("remaining_uses", remaining))

	return &Result{
		TransactionID: transactionID,
		GrantedUses:   entity.SubscriptionGrant,
		RemainingUses: remaining,
	}, nil
}
