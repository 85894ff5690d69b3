// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"strings"
	"time"
)

// Item is a catalog entry (a movie).
type Item struct {
	// ID is the catalog identifier.
	ID int `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Genres is an ordered, pipe-delimited genre list (e.g. "Action|Sci-Fi").
	Genres string `json:"genres"`

	// Overview is the free-text synopsis.
	Overview string `json:"overview"`

	// ExternalID is the identifier in an external movie database.
	ExternalID int `json:"external_id,omitempty"`
}

// ContentText returns the text the content model is built from: genres and
// overview joined by a space.
//
//nolint:gocritic // hugeParam: Item is read-only here
func (i Item) ContentText() string {
	return i.Genres + " " + i.Overview
}

// GenreList splits the pipe-delimited genres, trimming blanks.
//
//nolint:gocritic // hugeParam: Item is read-only here
func (i Item) GenreList() []string {
	if strings.TrimSpace(i.Genres) == "" {
		return []string{}
	}
	parts := strings.Split(i.Genres, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Interaction is an explicit rating of an item by a user.
// Ratings are 1.0 to 5.0 by convention; duplicates per (user, item) are kept.
type Interaction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ItemID    int       `json:"item_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// WatchlistEntry marks an item a user intends to watch. It boosts the item's
// score and is never treated as a rating.
type WatchlistEntry struct {
	ID      int       `json:"id"`
	UserID  int       `json:"user_id"`
	ItemID  int       `json:"item_id"`
	AddedAt time.Time `json:"added_at"`
}

// Prediction is the collaborative estimate for a (user, item) pair.
// Available is false when no estimate exists; callers substitute the
// neutral rating.
type Prediction struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// Options adjusts a single recommendation request.
type Options struct {
	// ExcludeWatchlisted removes items already on the user's watchlist, which
	// turns the result into suggestions for adding to it.
	ExcludeWatchlisted bool
}

// ModelSource says where a model in the engine came from.
type ModelSource string

// Model sources.
const (
	SourceBuilt ModelSource = "built"
	SourceCache ModelSource = "cache"
	SourceNone  ModelSource = "none"
)

// Status describes a built engine.
type Status struct {
	Ready bool `json:"ready"`

	Items        int `json:"items"`
	Interactions int `json:"interactions"`
	Watchlist    int `json:"watchlist"`
	Users        int `json:"users"`

	ContentSource     ModelSource `json:"content_source"`
	Vocabulary        int         `json:"vocabulary"`
	CollabSource      ModelSource `json:"collaborative_source"`
	CollabAvailable   bool        `json:"collaborative_available"`
	CollabHoldoutRMSE float64     `json:"collaborative_holdout_rmse,omitempty"`

	BuiltAt         time.Time `json:"built_at"`
	BuildDurationMS int64     `json:"build_duration_ms"`
}
