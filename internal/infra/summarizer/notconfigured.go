package summarizer

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the selected summarization provider has no API
// credentials. Every call on a NotConfigured client fails with this error.
var ErrNotConfigured = errors.New("summarizer not configured")

// NotConfigured is the client returned when the selected provider's API key
// is missing. The process still boots, but summarization requests fail
// instead of silently degrading.
type NotConfigured struct {
	provider string
}

// NewNotConfigured creates a client that rejects every call for the named
// provider.
func NewNotConfigured(provider string) *NotConfigured {
	return &NotConfigured{provider: provider}
}

// Summarize always fails with ErrNotConfigured.
func (n *NotConfigured) Summarize(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: missing API key for provider %q", ErrNotConfigured, n.provider)
}
