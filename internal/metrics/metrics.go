package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventscape_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Discovery
	DiscoveryQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventscape_discovery_query_duration_seconds",
			Help:    "Duration of discovery queries by mode",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "cursor", "offset", "nearby", "weekend", "compound_geo", "compound_date_range"
	)

	DiscoveryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventscape_discovery_results",
			Help:    "Number of events returned by discovery queries",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	// Geocoding
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_geocode_requests_total",
			Help: "Total number of geocoding lookups by operation and result",
		},
		[]string{"operation", "result"}, // result: "ok", "no_results", "error", "cache_hit"
	)

	GeocodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventscape_geocode_provider_duration_seconds",
			Help:    "Duration of calls to the geocoding provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventscape_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Enrichment
	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_enrichment_outcomes_total",
			Help: "Enrichment steps by step and whether they succeeded",
		},
		[]string{"step", "success"},
	)

	// Check-ins
	CheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_checkins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"outcome"}, // "created", "duplicate", "event_not_found", "error"
	)

	// Realtime
	ChangeEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscape_change_events_published_total",
			Help: "Change notifications fanned out by collection and sink",
		},
		[]string{"collection", "sink"}, // sink: "sse", "amqp"
	)

	SSESubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventscape_sse_subscribers",
			Help: "Current number of connected SSE clients",
		},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordDiscoveryQuery(mode string, results int, duration time.Duration) {
	DiscoveryQueryDuration.WithLabelValues(mode).Observe(duration.Seconds())
	DiscoveryResults.WithLabelValues(mode).Observe(float64(results))
}

func RecordGeocode(operation, result string) {
	GeocodeRequests.WithLabelValues(operation, result).Inc()
}

func RecordEnrichmentStep(step string, success bool) {
	EnrichmentOutcomes.WithLabelValues(step, strconv.FormatBool(success)).Inc()
}

func RecordCheckin(outcome string) {
	CheckinsTotal.WithLabelValues(outcome).Inc()
}

func RecordChangePublished(collection, sink string) {
	ChangeEventsPublished.WithLabelValues(collection, sink).Inc()
}
