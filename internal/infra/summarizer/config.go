package summarizer

import (
	"fmt"
	"time"

	"medium-digest/pkg/config"
)

const (
	// minBullets and maxBullets bound the configurable bullet count.
	minBullets = 1
	maxBullets = 20

	// defaultMaxInputRunes caps the article text sent to the LLM. Longer
	// articles are truncated silently; the summary quality loss is small
	// compared to blowing the model's context window.
	defaultMaxInputRunes = 15000
)

// Config holds configuration parameters shared by the summarizer
// implementations. Loaded from environment variables with defaults.
type Config struct {
	// Language is the target language for summaries.
	// Loaded from SUMMARY_LANGUAGE. Default: "Turkish".
	Language string

	// MaxBullets is the maximum number of bullet points in a summary.
	// Loaded from SUMMARY_MAX_BULLETS. Valid range: 1-20. Default: 6.
	MaxBullets int

	// Model is the API model identifier to use for summarization.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature controls output randomness. Default: 0.3.
	Temperature float32

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration

	// MaxInputRunes is the maximum article length, in runes, sent to the
	// model. Longer input is truncated.
	MaxInputRunes int
}

// LoadConfig loads summarizer configuration from environment variables.
// Invalid values fall back to defaults with a warning log.
//
// Environment variables:
//   - SUMMARY_LANGUAGE: target summary language (default: "Turkish")
//   - SUMMARY_MAX_BULLETS: bullet point cap (default: 6, range: 1-20)
//   - SUMMARIZER_MODEL: model identifier (provider-specific default)
//   - SUMMARIZER_TIMEOUT: per-call timeout (default: 60s)
//   - SUMMARIZER_MAX_INPUT_RUNES: input truncation limit (default: 15000)
func LoadConfig(defaultModel string) Config {
	bullets := config.GetEnvInt("SUMMARY_MAX_BULLETS", 6)
	if bullets < minBullets || bullets > maxBullets {
		bullets = 6
	}

	return Config{
		Language:      config.GetEnvString("SUMMARY_LANGUAGE", "Turkish"),
		MaxBullets:    bullets,
		Model:         config.GetEnvString("SUMMARIZER_MODEL", defaultModel),
		MaxTokens:     1024,
		Temperature:   0.3,
		Timeout:       config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		MaxInputRunes: config.GetEnvInt("SUMMARIZER_MAX_INPUT_RUNES", defaultMaxInputRunes),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}
	if c.MaxBullets < minBullets || c.MaxBullets > maxBullets {
		return fmt.Errorf("max bullets %d outside valid range %d-%d", c.MaxBullets, minBullets, maxBullets)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxInputRunes <= 0 {
		return fmt.Errorf("max input runes must be positive, got %d", c.MaxInputRunes)
	}
	return nil
}

// systemPrompt builds the instruction given to the model. Heading markers
// like "[H2]" survive from the extraction stage and the model is told to use
// them for structure.
func (c Config) systemPrompt() string {
	return fmt.Sprintf(
		"You summarize web articles. Summarize the article the user sends in %s, "+
			"as at most %d concise bullet points. "+
			"Lines starting with markers like [H2] are section headings; use them to "+
			"follow the article structure. Output only the bullet points.",
		c.Language, c.MaxBullets)
}
