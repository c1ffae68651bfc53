package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Conversation metrics
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathwise_turns_total",
			Help: "Total number of conversation turns processed",
		},
		[]string{"phase", "response_type"},
	)

	turnDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathwise_turn_duration_seconds",
			Help:    "Conversation turn processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"phase"},
	)

	sessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pathwise_sessions_created_total",
			Help: "Total number of conversation sessions created",
		},
	)

	// Provider metrics
	providerCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathwise_provider_calls_total",
			Help: "Total number of LLM provider calls",
		},
		[]string{"provider", "status"},
	)

	providerCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathwise_provider_call_duration_seconds",
			Help:    "LLM provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	providerAvailable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pathwise_provider_available",
			Help: "Whether the last availability probe of a provider succeeded (1) or failed (0)",
		},
		[]string{"provider"},
	)

	initOnce sync.Once
)

// InitMetrics registers all Prometheus metrics. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			turnsTotal,
			turnDuration,
			sessionsCreated,
			providerCallsTotal,
			providerCallDuration,
			providerAvailable,
		)
	})
}

// MetricsHandler returns an HTTP handler for Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordTurn records one processed conversation turn.
func RecordTurn(phase, responseType string, duration time.Duration) {
	turnsTotal.WithLabelValues(phase, responseType).Inc()
	turnDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordSessionCreated counts a freshly created session.
func RecordSessionCreated() {
	sessionsCreated.Inc()
}

// RecordProviderCall records one LLM provider call outcome.
func RecordProviderCall(provider, status string, duration time.Duration) {
	providerCallsTotal.WithLabelValues(provider, status).Inc()
	if duration > 0 {
		providerCallDuration.WithLabelValues(provider).Observe(duration.Seconds())
	}
}

// SetProviderAvailable publishes the latest probe result for a provider.
func SetProviderAvailable(provider string, available bool) {
	v := 0.0
	if available {
		v = 1.0
	}
	providerAvailable.WithLabelValues(provider).Set(v)
}
