// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements a hybrid movie recommendation engine.
//
// # Architecture
//
// The engine blends two signals and degrades gracefully when either is missing:
//
//   - Content similarity: TF-IDF vectors over genres and overview, with a full
//     item-by-item cosine matrix
//   - Collaborative affinity: biased matrix factorization trained on explicit ratings
//   - Cold start: popularity (count times mean rating) for users with no history
//
// Every build takes one Snapshot of the catalog, ratings and watchlist through
// a Source, builds both models (or loads them from the artifact cache when the
// snapshot fingerprint matches) and precomputes the popularity ranking. The
// resulting Engine is immutable.
//
// # Scoring
//
// For a user with ratings, every unrated catalog item is scored as
//
//	hybrid = 0.4 * content + 0.6 * collaborative + boost
//
// where content is 5 times the mean similarity to the user's rated items,
// collaborative is the predicted rating (3.0 when unavailable) and boost is
// 0.2 for watchlisted items. All weights are configurable.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	provider := recommend.NewProvider(source, cache, cfg, logger)
//
//	ids, err := provider.Recommend(ctx, userID, 10, recommend.Options{})
//
//	// Rebuild from fresh data; the old engine keeps serving on failure.
//	err = provider.Refresh(ctx, "schedule")
//
// # Thread Safety
//
// Engine reads need no locking. Provider holds the shared engine behind a
// read-write mutex, collapses concurrent builds and swaps a new engine in only
// after it has been built completely.
package recommend
