// Package monitoring provides Prometheus metrics and OpenTelemetry tracing
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alchemorsel/matchmaker/internal/infrastructure/catalog/mealdb"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
)

const namespace = "matchmaker"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Matching metrics
	matchRequestsTotal  *prometheus.CounterVec
	matchDuration       prometheus.Histogram
	matchCandidates     prometheus.Histogram
	matchScores         prometheus.Histogram
	catalogCallsTotal   *prometheus.CounterVec
	catalogCallDuration *prometheus.HistogramVec
	cacheLookupsTotal   *prometheus.CounterVec
}

var (
	_ outbound.MatchMetrics = (*MetricsCollector)(nil)
	_ mealdb.CallObserver   = (*MetricsCollector)(nil)
)

// NewMetricsCollector creates a new metrics collector on its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	m := &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		matchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "match_requests_total",
				Help:      "Total number of match requests by outcome",
			},
			[]string{"outcome"},
		),
		matchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "match_duration_seconds",
				Help:      "End-to-end match request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		matchCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "match_candidates",
				Help:      "Number of candidate recipes considered per match request",
				Buckets:   []float64{0, 1, 3, 5, 8, 10, 15, 25},
			},
		),
		matchScores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "match_score",
				Help:      "Distribution of returned match scores",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
		),
		catalogCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_calls_total",
				Help:      "Total number of recipe catalog calls",
			},
			[]string{"endpoint", "outcome"},
		),
		catalogCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_call_duration_seconds",
				Help:      "Recipe catalog call duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"endpoint"},
		),
		cacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of cache lookups",
			},
			[]string{"cache", "result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.matchRequestsTotal,
		m.matchDuration,
		m.matchCandidates,
		m.matchScores,
		m.catalogCallsTotal,
		m.catalogCallDuration,
		m.cacheLookupsTotal,
	)

	return m
}

// Registry returns the registry backing this collector
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(m.logger),
	})
}

// RecordHTTPRequest records an HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMatchRequest records a completed match request
func (m *MetricsCollector) RecordMatchRequest(outcome string, candidates int, duration time.Duration) {
	m.matchRequestsTotal.WithLabelValues(outcome).Inc()
	m.matchDuration.Observe(duration.Seconds())
	m.matchCandidates.Observe(float64(candidates))
}

// RecordMatchScore records one returned score
func (m *MetricsCollector) RecordMatchScore(score int) {
	m.matchScores.Observe(float64(score))
}

// RecordCacheLookup records a cache hit or miss
func (m *MetricsCollector) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// ObserveCatalogCall records one catalog call
func (m *MetricsCollector) ObserveCatalogCall(endpoint, outcome string, duration time.Duration) {
	m.catalogCallsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.catalogCallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
