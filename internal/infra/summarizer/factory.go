package summarizer

import (
	"context"
	"log/slog"
	"os"

	"medium-digest/pkg/config"
)

// Summarizer generates a short text summary of article content.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// NewFromEnv builds the summarizer selected by SUMMARIZER_PROVIDER.
// "openai" (the default) requires OPENAI_API_KEY; "claude" requires
// ANTHROPIC_API_KEY. When the selected provider's key is missing the
// returned client fails every call with ErrNotConfigured. The NoOp
// summarizer is only used when explicitly requested.
func NewFromEnv() Summarizer {
	provider := config.GetEnvString("SUMMARIZER_PROVIDER", "openai")

	switch provider {
	case "claude":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return NewClaude(key)
		}
		slog.Warn("ANTHROPIC_API_KEY not set, summarization disabled")
		return NewNotConfigured("claude")
	case "noop":
		slog.Info("using noop summarizer")
		return NewNoOp()
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return NewOpenAI(key)
		}
		slog.Warn("OPENAI_API_KEY not set, summarization disabled")
		return NewNotConfigured("openai")
	}
}
