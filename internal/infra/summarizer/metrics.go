package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder defines the interface for recording summary-related
// metrics. Abstracting the recorder lets tests inject a mock instead of
// Prometheus and keeps the recorder reusable across providers.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in characters.
	RecordLength(length int)

	// RecordTruncation increments the counter when input text was truncated
	// before being sent to the model.
	RecordTruncation()

	// RecordDuration records the time taken to generate a summary.
	RecordDuration(duration time.Duration)

	// RecordOutcome records whether a summarization call succeeded.
	RecordOutcome(success bool)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	truncationCounter prometheus.Counter
	durationHistogram prometheus.Histogram
	outcomeCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist.
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist.
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// getOrCreateCounterVec gets an existing counter vec or creates a new one if it doesn't exist.
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusSummaryMetrics creates a new Prometheus-based metrics recorder.
// Uses a singleton to avoid duplicate metric registration in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "llm_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 700, 900, 1100, 1500, 2000},
			}),
			truncationCounter: getOrCreateCounter(prometheus.CounterOpts{
				Name: "llm_summary_input_truncated_total",
				Help: "Total number of articles truncated before summarization",
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "llm_summarization_duration_seconds",
				Help:    "Time taken to generate a summary via LLM API",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			outcomeCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "llm_summarization_requests_total",
				Help: "Total number of LLM summarization calls by outcome",
			}, []string{"status"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength.
func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordTruncation implements SummaryMetricsRecorder.RecordTruncation.
func (p *PrometheusSummaryMetrics) RecordTruncation() {
	p.truncationCounter.Inc()
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration.
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordOutcome implements SummaryMetricsRecorder.RecordOutcome.
func (p *PrometheusSummaryMetrics) RecordOutcome(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.outcomeCounter.WithLabelValues(status).Inc()
}
