// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ErrStorageUnavailable is returned when the data source cannot be read.
// It is the only failure the engine surfaces to callers.
var ErrStorageUnavailable = errors.New("recommendation storage unavailable")

// Source supplies the three tables a snapshot is built from. A missing table
// must be reported as an empty slice, not an error.
type Source interface {
	LoadItems(ctx context.Context) ([]Item, error)
	LoadInteractions(ctx context.Context) ([]Interaction, error)
	LoadWatchlist(ctx context.Context) ([]WatchlistEntry, error)
}

// ModelKind names one of the engine's models.
type ModelKind string

// Model kinds.
const (
	ModelContent       ModelKind = "content"
	ModelCollaborative ModelKind = "collaborative"
)

// Snapshot is an in-memory, row-ordered copy of the data store together with
// lookup indexes built once at load time. It is read-only after LoadSnapshot.
type Snapshot struct {
	Items        []Item
	Interactions []Interaction
	Watchlist    []WatchlistEntry

	// itemRow maps item id to its row in Items (first occurrence wins).
	itemRow map[int]int
	// userRatings maps user id to row indexes in Interactions.
	userRatings map[int][]int
	// userRated maps user id to the set of item ids the user rated.
	userRated map[int]map[int]struct{}
	// userWatchlist maps user id to the set of watchlisted item ids.
	userWatchlist map[int]map[int]struct{}
}

// LoadSnapshot reads all three tables from src. No filtering or joining is
// performed. Source errors are wrapped with ErrStorageUnavailable.
func LoadSnapshot(ctx context.Context, src Source) (*Snapshot, error) {
	items, err := src.LoadItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load items: %w", ErrStorageUnavailable, err)
	}
	interactions, err := src.LoadInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load interactions: %w", ErrStorageUnavailable, err)
	}
	watchlist, err := src.LoadWatchlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load watchlist: %w", ErrStorageUnavailable, err)
	}
	return NewSnapshot(items, interactions, watchlist), nil
}

// NewSnapshot indexes already loaded rows.
func NewSnapshot(items []Item, interactions []Interaction, watchlist []WatchlistEntry) *Snapshot {
	s := &Snapshot{
		Items:         items,
		Interactions:  interactions,
		Watchlist:     watchlist,
		itemRow:       make(map[int]int, len(items)),
		userRatings:   make(map[int][]int),
		userRated:     make(map[int]map[int]struct{}),
		userWatchlist: make(map[int]map[int]struct{}),
	}

	for row, item := range items {
		if _, dup := s.itemRow[item.ID]; !dup {
			s.itemRow[item.ID] = row
		}
	}

	for row, in := range interactions {
		s.userRatings[in.UserID] = append(s.userRatings[in.UserID], row)
		rated, ok := s.userRated[in.UserID]
		if !ok {
			rated = make(map[int]struct{})
			s.userRated[in.UserID] = rated
		}
		rated[in.ItemID] = struct{}{}
	}

	for _, w := range watchlist {
		set, ok := s.userWatchlist[w.UserID]
		if !ok {
			set = make(map[int]struct{})
			s.userWatchlist[w.UserID] = set
		}
		set[w.ItemID] = struct{}{}
	}

	return s
}

// ItemRow returns the catalog row of an item id.
func (s *Snapshot) ItemRow(itemID int) (int, bool) {
	row, ok := s.itemRow[itemID]
	return row, ok
}

// UserInteractions returns the user's ratings in table order.
func (s *Snapshot) UserInteractions(userID int) []Interaction {
	rows := s.userRatings[userID]
	out := make([]Interaction, len(rows))
	for i, r := range rows {
		out[i] = s.Interactions[r]
	}
	return out
}

// HasRated reports whether the user rated the item.
func (s *Snapshot) HasRated(userID, itemID int) bool {
	_, ok := s.userRated[userID][itemID]
	return ok
}

// RatedItems returns the set of item ids the user rated.
func (s *Snapshot) RatedItems(userID int) map[int]struct{} {
	return s.userRated[userID]
}

// IsWatchlisted reports whether the item is on the user's watchlist.
func (s *Snapshot) IsWatchlisted(userID, itemID int) bool {
	_, ok := s.userWatchlist[userID][itemID]
	return ok
}

// UserCount returns the number of distinct users with at least one rating.
func (s *Snapshot) UserCount() int {
	return len(s.userRatings)
}

// Fingerprint hashes the rows a model of the given kind depends on, in row
// order: id, genres and overview for content; user, item and rating for
// collaborative. Equal fingerprints mean a cached model is still valid.
func (s *Snapshot) Fingerprint(kind ModelKind) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:]) //nolint:errcheck // xxhash writes never fail
	}
	writeString := func(v string) {
		writeInt(int64(len(v)))
		_, _ = d.WriteString(v) //nolint:errcheck // xxhash writes never fail
	}

	_, _ = d.WriteString(string(kind)) //nolint:errcheck // xxhash writes never fail
	switch kind {
	case ModelContent:
		writeInt(int64(len(s.Items)))
		for _, item := range s.Items {
			writeInt(int64(item.ID))
			writeString(item.Genres)
			writeString(item.Overview)
		}
	case ModelCollaborative:
		writeInt(int64(len(s.Interactions)))
		for _, in := range s.Interactions {
			writeInt(int64(in.UserID))
			writeInt(int64(in.ItemID))
			writeInt(int64(math.Float64bits(in.Rating)))
		}
	}
	return d.Sum64()
}
