package db

import "database/sql"

// MigrateUp creates the accounts and summaries tables and their indexes.
// Statements are idempotent so the migration can run on every start.
func MigrateUp(database *sql.DB) error {
	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS accounts (
    id             SERIAL PRIMARY KEY,
    email          TEXT NOT NULL UNIQUE,
    password_hash  TEXT NOT NULL DEFAULT '',
    remaining_uses INTEGER NOT NULL DEFAULT 10 CHECK (remaining_uses >= 0),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS summaries (
    id                   SERIAL PRIMARY KEY,
    account_id           INTEGER REFERENCES accounts(id),
    url                  TEXT NOT NULL,
    original_text_length INTEGER NOT NULL CHECK (original_text_length >= 0),
    summary_text         TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// history endpoint orders by recency per account
		`CREATE INDEX IF NOT EXISTS idx_summaries_account_created ON summaries(account_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_url ON summaries(url)`,
	}
	for _, idx := range indexes {
		if _, err := database.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the schema. Use with caution: this deletes all data.
func MigrateDown(database *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS summaries CASCADE`,
		`DROP TABLE IF EXISTS accounts CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
