package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that enforces request timeouts.
// If a request takes longer than the specified duration, it returns 504
// Gateway Timeout. The context is canceled so downstream handlers can clean up.
//
// A mutex guards response writes so that exactly one of the handler goroutine
// and the timeout path writes the response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			wrappedWriter := &timeoutResponseWriter{
				ResponseWriter: w,
				mu:             &mu,
				timedOut:       &timedOut,
			}

			go func() {
				next.ServeHTTP(wrappedWriter, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !wrappedWriter.written {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter wraps http.ResponseWriter to prevent writes after timeout.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu       *sync.Mutex
	timedOut *bool
	written  bool
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !*w.timedOut && !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if *w.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}
