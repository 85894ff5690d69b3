// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// ErrCircuitOpen is returned while the snapshot breaker rejects reads.
var ErrCircuitOpen = errors.New("database circuit breaker open")

// newBreaker builds the breaker guarding snapshot reads. It opens after
// BreakerFailures consecutive failures and probes again after BreakerTimeout.
func newBreaker(cfg *config.DatabaseConfig) *gobreaker.CircuitBreaker[any] {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= failures
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		// Caller cancellation says nothing about the health of the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordCircuitBreakerTransition(name, stateToInt(to), from.String(), to.String())
		},
	})
}

func stateToInt(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// read runs fn through the breaker with the configured timeout and records
// the query metrics for table.
func read[T any](ctx context.Context, db *DB, table string, fn func(ctx context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	start := time.Now()
	out, err := db.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	metrics.RecordDBQuery("select", table, time.Since(start), err)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, table)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	rows, _ := out.([]T)
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// BreakerState returns the current breaker state name.
func (db *DB) BreakerState() string {
	return db.cb.State().String()
}
