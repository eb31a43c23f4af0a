// Package summary provides use cases for querying and managing stored
// summaries: listing an account's history and deleting records.
package summary

import (
	"context"
	"errors"
	"fmt"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/repository"
	"medium-digest/internal/usecase/account"
)

// Sentinel errors for summary management operations.
var (
	// ErrSummaryNotFound indicates no summary exists with the given ID.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrInvalidSummaryID indicates the provided ID is not a positive integer.
	ErrInvalidSummaryID = errors.New("invalid summary ID")
)

// Service provides summary history and deletion use cases.
type Service struct {
	Repo     repository.SummaryRepository
	Resolver account.Resolver
}

// History returns the resolved account's summaries, most recent first.
func (s *Service) History(ctx context.Context) ([]*entity.SummaryRecord, error) {
	acct, err := s.Resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	records, err := s.Repo.ListByAccount(ctx, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return records, nil
}

// Delete removes a summary by ID.
// Returns ErrInvalidSummaryID for non-positive IDs and ErrSummaryNotFound
// when no record has the given ID. Deleting a summary does not refund the
// quota use it consumed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidSummaryID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrSummaryNotFound
		}
		return fmt.Errorf("delete summary: %w", err)
	}
	return nil
}

// QuotaReader exposes the resolved account's remaining-uses counter.
type QuotaReader struct {
	Accounts repository.AccountRepository
	Resolver account.Resolver
}

// Remaining returns the current quota for the resolved account.
func (q *QuotaReader) Remaining(ctx context.Context) (int, error) {
	acct, err := q.Resolver.Resolve(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve account: %w", err)
	}

	remaining, err := q.Accounts.Remaining(ctx, acct.ID)
	if err != nil {
		return 0, fmt.Errorf("read remaining uses: %w", err)
	}
	return remaining, nil
}
