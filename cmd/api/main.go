package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "medium-digest/internal/infra/adapter/persistence/postgres"
	"medium-digest/internal/infra/db"
	"medium-digest/internal/infra/fetcher"
	"medium-digest/internal/infra/payment"
	"medium-digest/internal/infra/summarizer"
	"medium-digest/internal/observability/logging"
	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/pkg/config"

	"medium-digest/internal/usecase/account"
	"medium-digest/internal/usecase/subscription"
	"medium-digest/internal/usecase/summarize"
	summaryUC "medium-digest/internal/usecase/summary"

	hhttp "medium-digest/internal/handler/http"
	"medium-digest/internal/handler/http/middleware"
	"medium-digest/internal/handler/http/requestid"
	hsummary "medium-digest/internal/handler/http/summary"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, version)

	runServer(logger, handler, version)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, use cases, and handlers, and returns the
// fully assembled HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	accountRepo := pgRepo.NewAccountRepo(database)
	summaryRepo := pgRepo.NewSummaryRepo(database)

	resolver := account.NewMockResolver(accountRepo)
	articleFetcher := fetcher.NewFromEnv()
	llm := summarizer.NewFromEnv()
	payments := payment.NewFromEnv()

	workflow := &summarize.Workflow{
		Resolver:   resolver,
		Accounts:   accountRepo,
		Fetcher:    articleFetcher,
		Summarizer: llm,
		Repo:       summaryRepo,
	}
	subSvc := subscription.NewService(resolver, accountRepo, payments)
	histSvc := &summaryUC.Service{Repo: summaryRepo, Resolver: resolver}

	mux := http.NewServeMux()

	// API routes
	hsummary.Register(mux, workflow, subSvc, histSvc)

	// Operational endpoints
	var breakers []hhttp.BreakerState
	for _, cb := range circuitbreaker.All() {
		breakers = append(breakers, cb)
	}
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version, Breakers: breakers})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /alive", &hhttp.AliveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /", &hhttp.InfoHandler{})

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the handler with the middleware chain.
//
// Order (outermost first): CORS, request ID, recovery, logging, timeout,
// body size limit, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 120*time.Second)

	chain := handler

	// Apply in reverse order (innermost to outermost).
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)

	// CORS is optional: without configured origins the API is same-origin only.
	if corsConfig, err := middleware.LoadCORSConfig(); err == nil {
		corsConfig.Logger = logger
		chain = middleware.CORS(*corsConfig)(chain)
		logger.Info("CORS enabled",
			slog.Int("origins", len(corsConfig.AllowedOrigins)))
	} else {
		logger.Warn("CORS disabled", slog.Any("reason", err))
	}

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
