package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"medium-digest/internal/domain/entity"
	"medium-digest/internal/repository"
	"medium-digest/internal/usecase/account"
	"medium-digest/internal/usecase/fetch"
	"medium-digest/internal/utils/text"
)

// Summarizer generates a short text summary of article content.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Stage identifies how far a summarization request progressed before it
// finished or failed.
type Stage string

const (
	StageValidating    Stage = "validating"
	StageQuotaChecking Stage = "quota_checking"
	StageFetching      Stage = "fetching"
	StageSummarizing   Stage = "summarizing"
	StagePersisting    Stage = "persisting"
	StageSucceeded     Stage = "succeeded"
)

// Result carries the outcome of a successful summarization.
type Result struct {
	Record        *entity.SummaryRecord
	RemainingUses int

	// Durations of the two slow stages, for metrics recording by the caller.
	FetchDuration     time.Duration
	SummarizeDuration time.Duration
}

// Workflow runs the summarization pipeline. The pipeline makes a single
// attempt at each stage: a fetch or LLM failure is returned to the caller
// rather than retried, and the quota is only consumed when the summary is
// successfully persisted.
type Workflow struct {
	Resolver   account.Resolver
	Accounts   repository.AccountRepository
	Fetcher    fetch.ArticleFetcher
	Summarizer Summarizer
	Repo       repository.SummaryRepository
}

// Run summarizes the article at rawURL for the resolved account.
//
// Stages, in order:
//  1. Validate the URL (scheme, host, Medium domain check).
//  2. Resolve the account and reject immediately if its quota is empty.
//  3. Fetch the page and extract the article text.
//  4. Generate the summary via the LLM.
//  5. Persist the record and decrement the quota in one transaction.
//
// The quota pre-check in stage 2 is advisory: the authoritative check is
// the conditional decrement inside the persistence transaction, so two
// concurrent requests racing for the last use cannot both succeed.
func (w *Workflow) Run(ctx context.Context, rawURL string) (*Result, error) {
	if err := entity.ValidateArticleURL(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	acct, err := w.Resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	remaining, err := w.Accounts.Remaining(ctx, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if remaining <= 0 {
		return nil, ErrQuotaExhausted
	}

	fetchStart := time.Now()
	articleText, err := w.Fetcher.FetchContent(ctx, rawURL)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		slog.WarnContext(ctx, "article extraction failed",
			slog.String("url", rawURL),
			slog.Duration("duration", fetchDuration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	summarizeStart := time.Now()
	summaryText, err := w.Summarizer.Summarize(ctx, articleText)
	summarizeDuration := time.Since(summarizeStart)
	if err != nil {
		slog.WarnContext(ctx, "summarization failed",
			slog.String("url", rawURL),
			slog.Duration("duration", summarizeDuration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	record := &entity.SummaryRecord{
		AccountID:          &acct.ID,
		URL:                rawURL,
		OriginalTextLength: text.CountRunes(articleText),
		SummaryText:        summaryText,
		CreatedAt:          time.Now().UTC(),
	}

	remainingAfter, err := w.Repo.CreateConsumingQuota(ctx, record)
	if err != nil {
		if errors.Is(err, entity.ErrQuotaExhausted) {
			// Lost the race for the last remaining use.
			return nil, ErrQuotaExhausted
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	slog.InfoContext(ctx, "summary created",
		slog.Int64("summary_id", record.ID),
		slog.String("url", rawURL),
		slog.Int("original_length", record.OriginalTextLength),
		slog.Int("summary_length", text.CountRunes(summaryText)),
		slog.Int("remaining_uses", remainingAfter))

	return &Result{
		Record:            record,
		RemainingUses:     remainingAfter,
		FetchDuration:     fetchDuration,
		SummarizeDuration: summarizeDuration,
	}, nil
}

// FailureStage maps a workflow error to the stage it occurred in.
// Unknown errors map to StagePersisting since that is the last stage with
// non-sentinel failure modes.
func FailureStage(err error) Stage {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return StageValidating
	case errors.Is(err, ErrQuotaExhausted):
		return StageQuotaChecking
	case errors.Is(err, ErrExtractionFailed):
		return StageFetching
	case errors.Is(err, ErrSummarizationFailed):
		return StageSummarizing
	default:
		return StagePersisting
	}
}
