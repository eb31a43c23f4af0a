// Package db manages the PostgreSQL connection pool and schema migrations.
package db

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"medium-digest/pkg/config"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates and configures a new database connection pool.
// It reads DATABASE_URL from the environment and applies pool settings
// overridable via DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME
// and DB_CONN_MAX_IDLE_TIME.
func Open() *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	database, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}

	defaults := DefaultConnectionConfig()
	cfg := ConnectionConfig{
		MaxOpenConns:    config.GetEnvInt("DB_MAX_OPEN_CONNS", defaults.MaxOpenConns),
		MaxIdleConns:    config.GetEnvInt("DB_MAX_IDLE_CONNS", defaults.MaxIdleConns),
		ConnMaxLifetime: config.GetEnvDuration("DB_CONN_MAX_LIFETIME", defaults.ConnMaxLifetime),
		ConnMaxIdleTime: config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", defaults.ConnMaxIdleTime),
	}

	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	database.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	slog.Info("database connection established successfully")
	return database
}
