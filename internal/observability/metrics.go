// Package observability holds Prometheus collectors and OpenTelemetry
// tracing setup shared across the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheRequests counts cache-aside lookups by result (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_requests_total",
		Help: "Total cache lookups by result",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by outcome.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(outcome string, begin time.Time) {
	DatabaseQueryLatency.WithLabelValues(outcome).Observe(time.Since(begin).Seconds())
}
