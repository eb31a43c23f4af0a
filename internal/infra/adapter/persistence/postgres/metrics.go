package postgres

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Database query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	},
	[]string{"operation"},
)

// observeQuery records the elapsed time of a repository operation.
// Meant to be deferred at the top of the method.
func observeQuery(operation string, start time.Time) {
	dbQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
