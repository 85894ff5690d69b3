// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package api exposes the recommendation engine over a thin JSON HTTP API
// built on chi.
package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender is the engine surface the handlers use. *recommend.Provider
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID, n int, opts recommend.Options) ([]int, error)
	SimilarItems(ctx context.Context, itemID, k int) ([]int, error)
	Refresh(ctx context.Context, trigger string) error
	Status() recommend.ProviderStatus
	Ready() bool
}

// RefreshPublisher publishes refresh requests. *events.Bus implements it.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, reason string) (string, error)
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	recommender Recommender
	publisher   RefreshPublisher
	limits      config.RecommendConfig
	version     string
	startTime   time.Time

	// results memoizes ranked lists per engine build; nil when disabled.
	results *cache.LRU[[]int]

	// background runs refreshes started without an event bus. Tests replace
	// it to run synchronously.
	background func(func())
}

// NewHandler creates a Handler. publisher may be nil, in which case refresh
// requests run directly in the background.
func NewHandler(recommender Recommender, publisher RefreshPublisher, limits *config.RecommendConfig, version string) *Handler {
	var results *cache.LRU[[]int]
	if limits.ResultCacheSize > 0 {
		results = cache.NewLRU[[]int](limits.ResultCacheSize, limits.ResultCacheTTL)
	}
	return &Handler{
		recommender: recommender,
		publisher:   publisher,
		limits:      *limits,
		version:     version,
		startTime:   time.Now(),
		results:     results,
		background:  func(fn func()) { go fn() },
	}
}
