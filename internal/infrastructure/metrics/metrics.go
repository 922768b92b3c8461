package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Menu chat API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Resolutions by decision path
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "resolutions_total",
			Help:      "Answers resolved, by decision path",
		},
		[]string{"path"},
	)

	// Engine call counters
	EngineErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "engine_errors_total",
			Help:      "Total reasoning engine call failures",
		},
		[]string{"error_type"},
	)

	// Engine inference duration
	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "engine_duration_seconds",
			Help:      "Reasoning engine resolution duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Stream fragments
	StreamFragmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "stream_fragments_total",
			Help:      "Total answer fragments streamed to clients",
		},
	)

	// Catalog snapshot size gauge
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "famires",
			Subsystem: "menu_chat",
			Name:      "catalog_items",
			Help:      "Items in the current catalog snapshot",
		},
	)
)

// RecordRequest records an HTTP request with duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordResolution records which decision path produced an answer
func RecordResolution(path string) {
	ResolutionsTotal.WithLabelValues(path).Inc()
}

// RecordEngineError records a reasoning engine failure
func RecordEngineError(errorType string) {
	EngineErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordEngineDuration records the duration of an engine resolution
func RecordEngineDuration(model string, durationSec float64) {
	EngineDuration.WithLabelValues(model).Observe(durationSec)
}
