package http

import (
	"net/http"
	"strconv"
	"time"

	"medium-digest/internal/handler/http/pathutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration tracks request latency. The upper buckets are wide
	// because a summarize request waits on both the article fetch and the LLM
	// call, each of which can take seconds.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// Business metrics
	summariesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_created_total",
			Help: "Total number of summarization requests by outcome",
		},
		[]string{"status"},
	)

	articleFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract an article",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	summarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize an article",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	quotaExhaustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quota_exhausted_total",
			Help: "Total number of requests rejected because the account quota was exhausted",
		},
	)

	subscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_total",
			Help: "Total number of subscription top-up attempts by outcome",
		},
		[]string{"status"},
	)
)

// responseWriter wraps http.ResponseWriter to record status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// MetricsMiddleware records HTTP request metrics including duration, size, and
// status codes. It uses path normalization to prevent label cardinality
// explosion from ID-containing paths.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Example: /api/delete/123 -> /api/delete/:id
		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(r.ContentLength))
		}

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(rw.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(rw.size))
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordSummaryCreated records the outcome of a summarization request.
func RecordSummaryCreated(status string) {
	summariesCreatedTotal.WithLabelValues(status).Inc()
}

// RecordQuotaExhausted records a request rejected due to an exhausted quota.
func RecordQuotaExhausted() {
	quotaExhaustedTotal.Inc()
}

// RecordSubscription records the outcome of a subscription top-up attempt.
func RecordSubscription(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	subscriptionsTotal.WithLabelValues(status).Inc()
}

// RecordArticleFetchDuration records the time taken to fetch and extract an article.
func RecordArticleFetchDuration(duration time.Duration) {
	articleFetchDuration.Observe(duration.Seconds())
}

// RecordSummarizationDuration records the time taken to summarize an article.
func RecordSummarizationDuration(duration time.Duration) {
	summarizationDuration.Observe(duration.Seconds())
}
