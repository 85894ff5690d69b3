// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/metrics"
)

// cachedList returns the list stored under key for the current engine build,
// or computes and stores it. Nothing is cached before the first build so a
// request that triggers it does not pin a key to the zero build time.
func (h *Handler) cachedList(endpoint, key string, compute func() ([]int, error)) ([]int, error) {
	if h.results == nil {
		return compute()
	}

	builtAt := h.recommender.Status().BuiltAt
	if builtAt.IsZero() {
		return compute()
	}
	fullKey := fmt.Sprintf("%s:%d", key, builtAt.UnixNano())

	if items, ok := h.results.Get(fullKey); ok {
		metrics.ResultCacheLookups.WithLabelValues(endpoint, "hit").Inc()
		return items, nil
	}
	metrics.ResultCacheLookups.WithLabelValues(endpoint, "miss").Inc()

	items, err := compute()
	if err != nil {
		return nil, err
	}
	h.results.Add(fullKey, items)
	return items, nil
}
