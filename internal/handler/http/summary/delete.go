package summary

import (
	"errors"
	"net/http"

	"medium-digest/internal/handler/http/pathutil"
	"medium-digest/internal/handler/http/respond"
	summaryUC "medium-digest/internal/usecase/summary"
)

// DeleteHandler handles DELETE /api/delete/{id}.
type DeleteHandler struct {
	Svc *summaryUC.Service
}

// ServeHTTP deletes a stored summary by ID.
//   - 400 for a non-numeric or non-positive ID
//   - 404 when no summary has that ID
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/delete/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, summaryUC.ErrSummaryNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, summaryUC.ErrInvalidSummaryID):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
