// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FlushLatency records the latency of full-document store flushes.
	FlushLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fable_store_flush_latency_seconds",
		Help:    "Store document flush latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ActivityAppends counts records appended to the activity log.
	ActivityAppends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fable_activity_appends_total",
		Help: "Total number of activity records appended",
	})

	// PushDeliveries counts web-push delivery attempts by outcome.
	PushDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fable_push_deliveries_total",
		Help: "Total web-push delivery attempts by outcome",
	}, []string{"outcome"})
)
