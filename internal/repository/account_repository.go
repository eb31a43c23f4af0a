package repository

import (
	"context"

	"medium-digest/internal/domain/entity"
)

// AccountRepository is the quota ledger: it tracks the per-account
// remaining-uses counter alongside the account identity itself.
type AccountRepository interface {
	// GetOrCreate returns the account for the given email, creating it
	// with entity.DefaultFreeUses remaining uses if absent. Creation is
	// race-safe: two concurrent calls for the same email observe the
	// same row.
	GetOrCreate(ctx context.Context, email string) (*entity.Account, error)

	// AddUses increments remaining-uses by n and returns the new value.
	// Returns entity.ErrNotFound for an unknown account.
	AddUses(ctx context.Context, accountID int64, n int) (int, error)

	// Remaining returns the current remaining-uses counter.
	// Returns entity.ErrNotFound for an unknown account.
	Remaining(ctx context.Context, accountID int64) (int, error)
}
