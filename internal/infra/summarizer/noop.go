package summarizer

import (
	"context"

	"medium-digest/internal/utils/text"
)

// NoOp is a summarizer that returns the original text without calling any
// API. Selected with SUMMARIZER_PROVIDER=noop for development and tests.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the original text truncated to the first 500 characters
// to roughly match the size of a real summary.
func (n *NoOp) Summarize(_ context.Context, articleText string) (string, error) {
	const maxLength = 500
	truncated := text.TruncateRunes(articleText, maxLength)
	if truncated == articleText {
		return articleText, nil
	}
	return truncated + "...", nil
}
