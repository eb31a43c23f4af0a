package fetcher

import (
	"log/slog"

	"medium-digest/internal/usecase/fetch"
	"medium-digest/pkg/config"
)

// NewFromEnv builds the article fetcher selected by the FETCHER environment
// variable. "medium" (the default) uses the structure-aware MediumFetcher;
// "readability" uses the generic Readability extractor.
func NewFromEnv() fetch.ArticleFetcher {
	cfg := LoadConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		slog.Warn("invalid fetch config, falling back to defaults",
			slog.Any("error", err))
		cfg = DefaultConfig()
	}

	switch config.GetEnvString("FETCHER", "medium") {
	case "readability":
		slog.Info("using readability article fetcher")
		return NewReadabilityFetcher(cfg)
	default:
		slog.Info("using medium article fetcher",
			slog.Bool("proxy_enabled", cfg.ProxyAPIKey != ""))
		return NewMediumFetcher(cfg)
	}
}
