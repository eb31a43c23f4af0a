package summary

import (
	"net/http"

	"medium-digest/internal/usecase/subscription"
	"medium-digest/internal/usecase/summarize"
	summaryUC "medium-digest/internal/usecase/summary"
)

// Register registers the summary API handlers with the given mux.
func Register(mux *http.ServeMux, workflow *summarize.Workflow, subSvc *subscription.Service, svc *summaryUC.Service) {
	mux.Handle("POST   /api/summarize", SummarizeHandler{Workflow: workflow})
	mux.Handle("POST   /api/subscribe", SubscribeHandler{Svc: subSvc})
	mux.Handle("GET    /api/history", HistoryHandler{Svc: svc})
	mux.Handle("DELETE /api/delete/", DeleteHandler{Svc: svc})
}
