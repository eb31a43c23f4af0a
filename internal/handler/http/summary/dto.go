// Package summary provides the HTTP handlers for the summarization API:
// summarize, subscribe, history, and delete.
package summary

import (
	"time"

	"medium-digest/internal/domain/entity"
)

// SummaryResponse is the JSON representation of a stored summary.
type SummaryResponse struct {
	ID                 int64  `json:"id"`
	URL                string `json:"url"`
	OriginalTextLength int    `json:"original_text_length"`
	Summary            string `json:"summary"`
	CreatedAt          string `json:"created_at"`
}

// SummarizeResponse is returned by POST /api/summarize.
type SummarizeResponse struct {
	SummaryResponse
	RemainingUses int `json:"remaining_uses"`
}

// SubscribeResponse is returned by POST /api/subscribe.
type SubscribeResponse struct {
	TransactionID string `json:"transaction_id"`
	GrantedUses   int    `json:"granted_uses"`
	RemainingUses int    `json:"remaining_uses"`
}

// HistoryResponse is returned by GET /api/history.
type HistoryResponse struct {
	Summaries []SummaryResponse `json:"summaries"`
	Count     int               `json:"count"`
}

// toSummaryResponse converts a domain record to its JSON representation.
func toSummaryResponse(record *entity.SummaryRecord) SummaryResponse {
	return SummaryResponse{
		ID:                 record.ID,
		URL:                record.URL,
		OriginalTextLength: record.OriginalTextLength,
		Summary:            record.SummaryText,
		CreatedAt:          record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
