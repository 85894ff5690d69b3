// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sort"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Scoring paths, used as metric labels and in debug logs.
const (
	pathEmpty     = "empty"
	pathColdStart = "cold_start"
	pathWarm      = "warm"
	pathFallback  = "fallback"
)

// scoredItem is a candidate with its hybrid score.
type scoredItem struct {
	id    int
	score float64
}

// Recommend returns up to n item ids for userID, best first.
func (e *Engine) Recommend(ctx context.Context, userID, n int) []int {
	return e.RecommendWithOptions(ctx, userID, n, Options{})
}

// RecommendWithOptions returns up to n item ids for userID, best first.
//
// Users without ratings get the popularity ranking. Otherwise every catalog
// item the user has not rated is scored as
//
//	content_weight*content + collaborative_weight*collaborative + boost
//
// and the result is sorted by score, ties kept in catalog order.
func (e *Engine) RecommendWithOptions(ctx context.Context, userID, n int, opts Options) []int {
	ids, path := e.recommend(userID, n, opts)
	metrics.RecordRecommendation("recommend", path)

	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("user_id", userID).
		Int("n", n).
		Str("path", path).
		Int("returned", len(ids)).
		Msg("recommendations generated")
	return ids
}

func (e *Engine) recommend(userID, n int, opts Options) ([]int, string) {
	if n <= 0 || len(e.snapshot.Items) == 0 {
		return []int{}, pathEmpty
	}

	history := e.snapshot.UserInteractions(userID)
	if len(history) == 0 {
		return e.popular(userID, n, opts), pathColdStart
	}

	var candidates []int
	for row, item := range e.snapshot.Items {
		if e.snapshot.HasRated(userID, item.ID) {
			continue
		}
		if opts.ExcludeWatchlisted && e.snapshot.IsWatchlisted(userID, item.ID) {
			continue
		}
		candidates = append(candidates, row)
	}
	if len(candidates) == 0 {
		return e.popular(userID, n, opts), pathFallback
	}

	ratedRows := e.ratedRows(history)
	scored := make([]scoredItem, len(candidates))
	for i, row := range candidates {
		scored[i] = scoredItem{
			id:    e.snapshot.Items[row].ID,
			score: e.hybridScore(userID, row, ratedRows),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if n > len(scored) {
		n = len(scored)
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = scored[i].id
	}
	return ids, pathWarm
}

// ratedRows maps a user's ratings to catalog rows, skipping items missing
// from the catalog. Duplicate ratings of an item count once per rating.
func (e *Engine) ratedRows(history []Interaction) []int {
	rows := make([]int, 0, len(history))
	for _, in := range history {
		if row, ok := e.snapshot.ItemRow(in.ItemID); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// hybridScore scores the catalog item at row for userID.
func (e *Engine) hybridScore(userID, row int, ratedRows []int) float64 {
	w := e.cfg.Weights
	itemID := e.snapshot.Items[row].ID

	content := 0.0
	if len(ratedRows) > 0 {
		content = w.ContentScale * e.content.MeanSimilarity(row, ratedRows)
	}

	collab := w.NeutralRating
	if p := e.PredictRating(userID, itemID); p.Available {
		collab = p.Value
	} else {
		metrics.NeutralPredictions.Inc()
	}

	boost := 0.0
	if e.snapshot.IsWatchlisted(userID, itemID) {
		boost = w.WatchlistBoost
	}

	return w.Content*content + w.Collaborative*collab + boost
}

// popular returns the cold-start ranking: items by count times mean rating,
// or a seeded sample of the catalog when there are no ratings at all.
func (e *Engine) popular(userID, n int, opts Options) []int {
	ranked := e.coldSample
	if e.popularity.Len() > 0 {
		ranked = e.popularity.TopK(e.popularity.Len())
	}

	out := make([]int, 0, min(n, len(ranked)))
	for _, id := range ranked {
		if len(out) == n {
			break
		}
		if opts.ExcludeWatchlisted && e.snapshot.IsWatchlisted(userID, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// SimilarItems returns up to k catalog item ids most similar in content to
// itemID, excluding itemID itself. Ties keep catalog order. An unknown item
// yields the first k catalog items other than itemID.
func (e *Engine) SimilarItems(itemID, k int) []int {
	if k <= 0 || len(e.snapshot.Items) == 0 {
		metrics.RecordRecommendation("similar", pathEmpty)
		return []int{}
	}

	row, ok := e.snapshot.ItemRow(itemID)
	sims := e.content.Row(row)
	if !ok || sims == nil {
		metrics.RecordRecommendation("similar", pathFallback)
		out := make([]int, 0, k)
		for _, item := range e.snapshot.Items {
			if len(out) == k {
				break
			}
			if item.ID != itemID {
				out = append(out, item.ID)
			}
		}
		return out
	}

	scored := make([]scoredItem, 0, len(e.snapshot.Items))
	for r, item := range e.snapshot.Items {
		if item.ID == itemID || r >= len(sims) {
			continue
		}
		scored = append(scored, scoredItem{id: item.ID, score: sims[r]})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if k > len(scored) {
		k = len(scored)
	}
	out := make([]int, k)
	for i := range out {
		out[i] = scored[i].id
	}
	metrics.RecordRecommendation("similar", pathWarm)
	return out
}
