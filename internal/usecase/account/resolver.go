// Package account resolves the account a request acts on behalf of.
// The service currently runs without real authentication: every request is
// bound to a single configured account. The Resolver interface is the seam
// where a real auth layer would plug in.
package account

import (
	"context"
	"fmt"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/repository"
	"medium-digest/pkg/config"
)

// DefaultMockEmail is the account every request maps to when
// MOCK_ACCOUNT_EMAIL is unset.
const DefaultMockEmail = "demo@medium-digest.local"

// Resolver returns the account the current request belongs to.
type Resolver interface {
	Resolve(ctx context.Context) (*entity.Account, error)
}

// MockResolver binds every request to one fixed account, creating it on
// first use with the default starting quota.
type MockResolver struct {
	Repo  repository.AccountRepository
	Email string
}

// NewMockResolver creates a MockResolver bound to the email configured in
// MOCK_ACCOUNT_EMAIL.
func NewMockResolver(repo repository.AccountRepository) *MockResolver {
	return &MockResolver{
		Repo:  repo,
		Email: config.GetEnvString("MOCK_ACCOUNT_EMAIL", DefaultMockEmail),
	}
}

// Resolve returns the configured account, creating it if needed.
func (r *MockResolver) Resolve(ctx context.Context) (*entity.Account, error) {
	account, err := r.Repo.GetOrCreate(ctx, r.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	return account, nil
}
