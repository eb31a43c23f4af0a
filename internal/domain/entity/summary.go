// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Account and SummaryRecord, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// SummaryRecord represents one persisted summarization result.
// It is created exactly once per successful summarization and is immutable
// afterwards, except for deletion.
type SummaryRecord struct {
	ID                 int64
	AccountID          *int64 // nil in legacy no-account mode
	URL                string
	OriginalTextLength int
	SummaryText        string
	CreatedAt          time.Time
}
