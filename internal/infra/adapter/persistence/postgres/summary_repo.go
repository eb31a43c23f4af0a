package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/repository"
)

type SummaryRepo struct {
	db *sql.DB
}

func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return &SummaryRepo{db: db}
}

// CreateConsumingQuota writes the record and consumes one quota use in a
// single transaction. The conditional UPDATE takes a row lock on the account,
// so two requests racing on the last remaining use serialize: the loser
// matches zero rows and the transaction rolls back with ErrQuotaExhausted.
func (repo *SummaryRepo) CreateConsumingQuota(ctx context.Context, record *entity.SummaryRecord) (int, error) {
	defer observeQuery("create_consuming_quota", time.Now())

	if record.AccountID == nil {
		return 0, fmt.Errorf("CreateConsumingQuota: record has no account")
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("CreateConsumingQuota: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const decrement = `
UPDATE accounts
SET remaining_uses = remaining_uses - 1
WHERE id = $1 AND remaining_uses > 0
RETURNING remaining_uses`
	var remaining int
	err = tx.QueryRowContext(ctx, decrement, *record.AccountID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrQuotaExhausted
	}
	if err != nil {
		return 0, fmt.Errorf("CreateConsumingQuota: decrement: %w", err)
	}

	const insert = `
INSERT INTO summaries (account_id, url, original_text_length, summary_text, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err = tx.QueryRowContext(ctx, insert,
		*record.AccountID, record.URL, record.OriginalTextLength,
		record.SummaryText, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return 0, fmt.Errorf("CreateConsumingQuota: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("CreateConsumingQuota: commit: %w", err)
	}
	return remaining, nil
}

func (repo *SummaryRepo) Create(ctx context.Context, record *entity.SummaryRecord) error {
	defer observeQuery("create", time.Now())

	const query = `
INSERT INTO summaries (account_id, url, original_text_length, summary_text, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		record.AccountID, record.URL, record.OriginalTextLength,
		record.SummaryText, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SummaryRepo) List(ctx context.Context) ([]*entity.SummaryRecord, error) {
	defer observeQuery("list", time.Now())

	const query = `
SELECT id, account_id, url, original_text_length, summary_text, created_at
FROM summaries
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSummaries(rows, "List")
}

func (repo *SummaryRepo) ListByAccount(ctx context.Context, accountID int64) ([]*entity.SummaryRecord, error) {
	defer observeQuery("list_by_account", time.Now())

	const query = `
SELECT id, account_id, url, original_text_length, summary_text, created_at
FROM summaries
WHERE account_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ListByAccount: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSummaries(rows, "ListByAccount")
}

func (repo *SummaryRepo) Delete(ctx context.Context, id int64) error {
	defer observeQuery("delete", time.Now())

	const query = `DELETE FROM summaries WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func scanSummaries(rows *sql.Rows, op string) ([]*entity.SummaryRecord, error) {
	records := make([]*entity.SummaryRecord, 0, 50)
	for rows.Next() {
		var record entity.SummaryRecord
		if err := rows.Scan(&record.ID, &record.AccountID, &record.URL,
			&record.OriginalTextLength, &record.SummaryText, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
