// Package summarize implements the article summarization workflow:
// URL validation, quota check, article fetch and extraction, LLM
// summarization, and atomic persistence with quota consumption.
package summarize

import "errors"

// Sentinel errors for the summarization workflow. Each maps to a distinct
// HTTP status in the handler layer.
var (
	// ErrInvalidURL indicates the submitted URL failed validation
	// (malformed, wrong scheme, or not a Medium article).
	ErrInvalidURL = errors.New("invalid article URL")

	// ErrQuotaExhausted indicates the account has no remaining uses.
	ErrQuotaExhausted = errors.New("summarization quota exhausted")

	// ErrExtractionFailed indicates the article could not be fetched or
	// no readable text could be extracted from the page.
	ErrExtractionFailed = errors.New("article extraction failed")

	// ErrSummarizationFailed indicates the LLM call failed. The workflow
	// makes a single attempt; the caller may resubmit the request.
	ErrSummarizationFailed = errors.New("summarization failed")

	// ErrPersistenceFailed indicates the summary could not be stored.
	// The quota is not consumed in this case.
	ErrPersistenceFailed = errors.New("failed to store summary")
)
