// Package metrics defines Prometheus metrics for the activity-log service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "activitylog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activitylog_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activitylog_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	IngestQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "activitylog_ingest_queue_depth",
			Help: "Current ingestion queue depth",
		},
	)

	EventsIngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activitylog_events_ingested_total",
			Help: "Total activity events persisted",
		},
	)

	EventsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activitylog_events_dropped_total",
			Help: "Total activity events dropped because the queue was full",
		},
	)

	EventsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activitylog_events_failed_total",
			Help: "Total activity events that failed to persist",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		IngestQueueDepth,
		EventsIngestedTotal, EventsDroppedTotal, EventsFailedTotal,
	)
}
