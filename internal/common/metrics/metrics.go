// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockquery_requests_total",
			Help: "Total number of fulfillment requests received",
		},
		[]string{"intent"},
	)

	ResolutionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockquery_resolutions_total",
			Help: "Entity resolution outcomes by entity kind and status",
		},
		[]string{"entity", "status"},
	)

	CatalogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockquery_catalog_failures_total",
			Help: "Total number of catalog snapshot fetch failures",
		},
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "stockquery_catalog_fetch_duration_seconds",
			Help: "Duration of catalog snapshot fetches in seconds",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "stockquery_request_duration_seconds",
			Help: "End-to-end fulfillment request duration in seconds",
		},
		[]string{"intent"},
	)
)
