package summary

import (
	"errors"
	"net/http"

	handlerhttp "medium-digest/internal/handler/http"
	"medium-digest/internal/handler/http/respond"
	"medium-digest/internal/infra/payment"
	"medium-digest/internal/usecase/subscription"
)

// SubscribeHandler handles POST /api/subscribe.
type SubscribeHandler struct {
	Svc *subscription.Service
}

// ServeHTTP charges the account and grants additional summarization uses.
// Payment failures, including a missing provider configuration, map to 500.
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.Subscribe(r.Context())
	if err != nil {
		handlerhttp.RecordSubscription(false)
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			respond.SafeErrorV2(w, http.StatusInternalServerError,
				respond.NewAppError(http.StatusInternalServerError, "payment provider unavailable", err))
		case errors.Is(err, subscription.ErrPaymentFailed):
			respond.SafeErrorV2(w, http.StatusInternalServerError,
				respond.NewAppError(http.StatusInternalServerError, "payment failed", err))
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	handlerhttp.RecordSubscription(true)

	respond.JSON(w, http.StatusOK, SubscribeResponse{
		TransactionID: result.TransactionID,
		GrantedUses:   result.GrantedUses,
		RemainingUses: result.RemainingUses,
	})
}
