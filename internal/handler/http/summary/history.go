package summary

import (
	"net/http"

	"medium-digest/internal/handler/http/respond"
	summaryUC "medium-digest/internal/usecase/summary"
)

// HistoryHandler handles GET /api/history.
type HistoryHandler struct {
	Svc *summaryUC.Service
}

// ServeHTTP returns the account's stored summaries, most recent first.
// An account with no summaries gets an empty list, not an error.
func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	records, err := h.Svc.History(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	summaries := make([]SummaryResponse, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, toSummaryResponse(record))
	}

	respond.JSON(w, http.StatusOK, HistoryResponse{
		Summaries: summaries,
		Count:     len(summaries),
	})
}
