package summary

import (
	"encoding/json"
	"errors"
	"net/http"

	handlerhttp "medium-digest/internal/handler/http"
	"medium-digest/internal/handler/http/respond"
	"medium-digest/internal/usecase/summarize"
)

// SummarizeHandler handles POST /api/summarize.
type SummarizeHandler struct {
	Workflow *summarize.Workflow
}

// ServeHTTP validates the request body, runs the summarization workflow,
// and maps workflow errors to HTTP statuses:
//   - 400 invalid or non-Medium URL
//   - 402 quota exhausted
//   - 500 extraction, summarization, or persistence failure
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}

	result, err := h.Workflow.Run(r.Context(), req.URL)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlerhttp.RecordSummaryCreated("success")
	handlerhttp.RecordArticleFetchDuration(result.FetchDuration)
	handlerhttp.RecordSummarizationDuration(result.SummarizeDuration)

	respond.JSON(w, http.StatusOK, SummarizeResponse{
		SummaryResponse: toSummaryResponse(result.Record),
		RemainingUses:   result.RemainingUses,
	})
}

func (h SummarizeHandler) respondError(w http.ResponseWriter, err error) {
	stage := summarize.FailureStage(err)
	handlerhttp.RecordSummaryCreated(string(stage))

	switch {
	case errors.Is(err, summarize.ErrInvalidURL):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, summarize.ErrQuotaExhausted):
		handlerhttp.RecordQuotaExhausted()
		respond.JSON(w, http.StatusPaymentRequired, map[string]string{
			"error": summarize.ErrQuotaExhausted.Error(),
		})
	default:
		// Carry the failure kind and its detail, with secrets masked.
		respond.SafeErrorV2(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, respond.SanitizeError(err), err))
	}
}
