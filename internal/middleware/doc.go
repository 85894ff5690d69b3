// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides chi-compatible HTTP middleware for the Marquee API.

Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    logging context so every log line of a request carries it
  - PrometheusMetrics: request counts, latency and in-flight gauge, labelled
    by chi route pattern to keep label cardinality bounded

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
