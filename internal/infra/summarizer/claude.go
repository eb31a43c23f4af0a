// Package summarizer provides LLM-backed text summarization implementations.
// It includes adapters for the OpenAI and Claude (Anthropic) APIs guarded by
// circuit breakers, with structured logging and Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/internal/utils/text"
)

// Claude implements the Summarizer interface using Anthropic's Claude API.
// Selected with SUMMARIZER_PROVIDER=claude.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a new Claude summarizer with the given API key.
func NewClaude(apiKey string) *Claude {
	config := LoadConfig(string(anthropic.ModelClaudeSonnet4_5_20250929))

	slog.Info("Initialized Claude summarizer with configuration",
		slog.String("language", config.Language),
		slog.Int("max_bullets", config.MaxBullets),
		slog.String("model", config.Model))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.LLMAPIConfig("claude-api")),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a bulleted summary of the given article text.
func (c *Claude) Summarize(ctx context.Context, articleText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, articleText)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("state", c.circuitBreaker.StateString()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without the circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, articleText string) (string, error) {
	requestID := uuid.New().String()

	inputLength := text.CountRunes(articleText)
	truncated := text.TruncateRunes(articleText, c.config.MaxInputRunes)
	if text.CountRunes(truncated) < inputLength {
		c.metricsRecorder.RecordTruncation()
		slog.Warn("article text truncated for claude api",
			slog.String("request_id", requestID),
			slog.Int("original_length", inputLength),
			slog.Int("truncated_length", text.CountRunes(truncated)))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(truncated)),
		slog.String("model", c.config.Model))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: c.config.systemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(truncated),
			),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(duration)

	if err != nil {
		c.metricsRecorder.RecordOutcome(false)
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		c.metricsRecorder.RecordOutcome(false)
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordOutcome(false)
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	summary := textBlock.Text
	summaryLength := text.CountRunes(summary)

	c.metricsRecorder.RecordLength(summaryLength)
	c.metricsRecorder.RecordOutcome(true)

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", duration))

	return summary, nil
}
