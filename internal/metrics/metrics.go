package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	SyncRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_requests_total",
			Help: "Total number of /sync requests received",
		},
	)

	SyncFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_failures_total",
			Help: "Total number of /sync requests that ended in an error",
		},
	)

	EventsDispatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_dispatched_total",
			Help: "Total number of events delivered to the messaging platform",
		},
	)

	DispatchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_failures_total",
			Help: "Total number of failed event deliveries",
		},
	)

	RetryEnqueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "retry_enqueued_total",
			Help: "Total number of envelopes placed on the retry queue",
		},
	)

	SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of /sync request processing",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(SyncRequestsTotal)
	prometheus.MustRegister(SyncFailuresTotal)
	prometheus.MustRegister(EventsDispatchedTotal)
	prometheus.MustRegister(DispatchFailuresTotal)
	prometheus.MustRegister(RetryEnqueuedTotal)
	prometheus.MustRegister(SyncDuration)
}
