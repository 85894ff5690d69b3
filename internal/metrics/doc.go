// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered once at package init with promauto and updated via
the Record* helpers from the packages that own the work.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8484/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Snapshot read time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed reads (counter)
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total: Breaker around the reads

Recommendation Metrics:
  - recommend_model_build_duration_seconds: Model build time (histogram)
    Labels: model (content, collaborative, engine)
  - recommend_model_cache_lookups_total: Artifact cache lookups (counter)
    Labels: model, result (hit, miss, stale, corrupt, disabled)
  - recommend_collaborative_holdout_rmse: Held-out RMSE of the last fit (gauge)
  - recommend_collaborative_insufficient_data_total: Builds without a collaborative model (counter)
  - recommend_snapshot_rows: Rows in the last loaded snapshot (gauge)
    Labels: table
  - recommend_requests_total: Recommendation requests by kind and path (counter)
    Labels: kind (recommend, similar), path (cold_start, warm, fallback, empty)
  - recommend_neutral_predictions_total: Collaborative estimates replaced by the neutral rating (counter)
  - recommend_refreshes_total: Engine rebuilds by outcome (counter)
    Labels: trigger, result

Event Metrics:
  - events_published_total, events_consumed_total: Refresh events (counter)
    Labels: topic

System Metrics:
  - app_info: Version information (gauge)
  - app_uptime_seconds: Uptime (gauge)
*/
package metrics
