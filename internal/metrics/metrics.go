// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_model_build_duration_seconds",
			Help:    "Duration of model builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"},
	)

	ModelCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_cache_lookups_total",
			Help: "Total number of model artifact cache lookups",
		},
		[]string{"model", "result"},
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_result_cache_lookups_total",
			Help: "Total number of API result cache lookups",
		},
		[]string{"endpoint", "result"},
	)

	CollaborativeHoldoutRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_collaborative_holdout_rmse",
			Help: "Held-out RMSE of the most recently trained collaborative model",
		},
	)

	CollaborativeInsufficientData = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_collaborative_insufficient_data_total",
			Help: "Total number of builds that skipped the collaborative model for lack of interactions",
		},
	)

	SnapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_rows",
			Help: "Number of rows in the most recently loaded data snapshot",
		},
		[]string{"table"},
	)

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by scoring path",
		},
		[]string{"kind", "path"},
	)

	NeutralPredictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_neutral_predictions_total",
			Help: "Total number of collaborative estimates replaced by the neutral rating",
		},
	)

	EngineRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_refreshes_total",
			Help: "Total number of engine builds by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	EngineLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_engine_last_build_timestamp_seconds",
			Help: "Unix time of the last successful engine build",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events handled by result",
		},
		[]string{"topic", "result"}, // result: "success", "failure", "dropped"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordModelBuild records how long a model build took.
func RecordModelBuild(model string, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordCacheLookup records the outcome of a model artifact lookup.
func RecordCacheLookup(model, result string) {
	ModelCacheLookups.WithLabelValues(model, result).Inc()
}

// RecordSnapshot records the row counts of a freshly loaded snapshot.
func RecordSnapshot(items, interactions, watchlist int) {
	SnapshotRows.WithLabelValues("movies").Set(float64(items))
	SnapshotRows.WithLabelValues("ratings").Set(float64(interactions))
	SnapshotRows.WithLabelValues("watchlist").Set(float64(watchlist))
}

// RecordRecommendation records which scoring path served a request.
func RecordRecommendation(kind, path string) {
	RecommendRequests.WithLabelValues(kind, path).Inc()
}

// RecordRefresh records an engine build. A nil err counts as success.
func RecordRefresh(trigger string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	} else {
		EngineLastBuild.Set(float64(time.Now().Unix()))
	}
	EngineRefreshes.WithLabelValues(trigger, result).Inc()
}

// RecordCircuitBreakerTransition records a breaker state change. state is the
// numeric gobreaker state entered: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerTransition(name string, state int, fromName, toName string) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, fromName, toName).Inc()
}
