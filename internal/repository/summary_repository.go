// Package repository defines the persistence interfaces consumed by the use case layer.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"medium-digest/internal/domain/entity"
)

// SummaryRepository provides durable storage for summarization results.
type SummaryRepository interface {
	// CreateConsumingQuota persists the record and decrements the owning
	// account's remaining-uses counter in a single transaction. The two
	// mutations commit or roll back together: a storage failure must not
	// leave a decremented quota, and a quota failure must not leave a
	// record. Returns entity.ErrQuotaExhausted when the account has no
	// remaining uses at commit time, and the remaining-uses value after
	// the decrement on success. The record's ID is populated on success.
	CreateConsumingQuota(ctx context.Context, record *entity.SummaryRecord) (int, error)

	// Create persists a record without touching any quota.
	// Used in legacy no-account mode where record.AccountID is nil.
	Create(ctx context.Context, record *entity.SummaryRecord) error

	// List returns all records, most recent first. Legacy no-auth mode.
	List(ctx context.Context) ([]*entity.SummaryRecord, error)

	// ListByAccount returns only the records owned by the given account,
	// most recent first. Cross-account leakage is a correctness defect.
	ListByAccount(ctx context.Context, accountID int64) ([]*entity.SummaryRecord, error)

	// Delete removes a record by ID.
	// Returns entity.ErrNotFound when no record has that ID.
	Delete(ctx context.Context, id int64) error
}
