package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/internal/utils/text"
)

// defaultOpenAIModel is the model used when SUMMARIZER_MODEL is unset.
const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAI implements the Summarizer interface using OpenAI's chat completion
// API. Calls go through a circuit breaker; a failed call is not retried, the
// caller gets the error directly.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates a new OpenAI summarizer with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	config := LoadConfig(defaultOpenAIModel)

	slog.Info("Initialized OpenAI summarizer with configuration",
		slog.String("language", config.Language),
		slog.Int("max_bullets", config.MaxBullets),
		slog.String("model", config.Model))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.LLMAPIConfig("openai-api")),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a bulleted summary of the given article text.
func (o *OpenAI) Summarize(ctx context.Context, articleText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doSummarize(ctx, articleText)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("state", o.circuitBreaker.StateString()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without the circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, articleText string) (string, error) {
	inputLength := text.CountRunes(articleText)
	truncated := text.TruncateRunes(articleText, o.config.MaxInputRunes)
	if text.CountRunes(truncated) < inputLength {
		o.metricsRecorder.RecordTruncation()
		slog.Warn("article text truncated for openai api",
			slog.Int("original_length", inputLength),
			slog.Int("truncated_length", text.CountRunes(truncated)))
	}

	slog.InfoContext(ctx, "Starting summarization",
		slog.Int("input_length", text.CountRunes(truncated)),
		slog.String("model", o.config.Model))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Temperature: o.config.Temperature,
		MaxTokens:   o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: o.config.systemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: truncated,
			},
		},
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(duration)

	if err != nil {
		o.metricsRecorder.RecordOutcome(false)
		slog.ErrorContext(ctx, "Summarization failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Guard against empty choices before indexing.
	if len(resp.Choices) == 0 {
		o.metricsRecorder.RecordOutcome(false)
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	summary := resp.Choices[0].Message.Content
	summaryLength := text.CountRunes(summary)

	o.metricsRecorder.RecordLength(summaryLength)
	o.metricsRecorder.RecordOutcome(true)

	slog.InfoContext(ctx, "Summarization completed",
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", duration))

	return summary, nil
}
