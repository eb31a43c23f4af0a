// Package postgres implements the repository interfaces on PostgreSQL
// via database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/repository"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) repository.AccountRepository {
	return &AccountRepo{db: db}
}

// GetOrCreate returns the account for the email, inserting it with the
// default free-use grant when absent. ON CONFLICT DO NOTHING followed by a
// re-select keeps concurrent first accesses converging on one row.
func (repo *AccountRepo) GetOrCreate(ctx context.Context, email string) (*entity.Account, error) {
	defer observeQuery("get_or_create", time.Now())

	const insert = `
INSERT INTO accounts (email, password_hash, remaining_uses)
VALUES ($1, '', $2)
ON CONFLICT (email) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, insert, email, entity.DefaultFreeUses); err != nil {
		return nil, fmt.Errorf("GetOrCreate: insert: %w", err)
	}

	const query = `
SELECT id, email, password_hash, remaining_uses, created_at
FROM accounts
WHERE email = $1
LIMIT 1`
	var account entity.Account
	err := repo.db.QueryRowContext(ctx, query, email).
		Scan(&account.ID, &account.Email, &account.PasswordHash,
			&account.RemainingUses, &account.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreate: select: %w", err)
	}
	return &account, nil
}

func (repo *AccountRepo) AddUses(ctx context.Context, accountID int64, n int) (int, error) {
	defer observeQuery("add_uses", time.Now())

	const query = `
UPDATE accounts
SET remaining_uses = remaining_uses + $1
WHERE id = $2
RETURNING remaining_uses`
	var remaining int
	err := repo.db.QueryRowContext(ctx, query, n, accountID).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("AddUses: %w", err)
	}
	return remaining, nil
}

func (repo *AccountRepo) Remaining(ctx context.Context, accountID int64) (int, error) {
	defer observeQuery("remaining", time.Now())

	const query = `SELECT remaining_uses FROM accounts WHERE id = $1 LIMIT 1`
	var remaining int
	err := repo.db.QueryRowContext(ctx, query, accountID).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("Remaining: %w", err)
	}
	return remaining, nil
}
