// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// memSource is an in-memory Source for tests.
type memSource struct {
	mu           sync.Mutex
	items        []Item
	interactions []Interaction
	watchlist    []WatchlistEntry
	err          error
	loads        int
}

func (m *memSource) LoadItems(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return append([]Item(nil), m.items...), nil
}

func (m *memSource) LoadInteractions(ctx context.Context) ([]Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]Interaction(nil), m.interactions...), nil
}

func (m *memSource) LoadWatchlist(ctx context.Context) ([]WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]WatchlistEntry(nil), m.watchlist...), nil
}

func (m *memSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

var errStorageDown = errors.New("database is locked")

// Item ids used across tests.
const (
	itemA = 101
	itemB = 102
	itemC = 103
)

// threeItemCatalog has no genre or overview overlap between items.
func threeItemCatalog() []Item {
	return []Item{
		{ID: itemA, Title: "Alpha", Genres: "Western", Overview: "cowboys ride across dusty plains"},
		{ID: itemB, Title: "Beta", Genres: "Musical", Overview: "singers perform opera nightly"},
		{ID: itemC, Title: "Gamma", Genres: "Horror", Overview: "haunted lighthouse keeper vanishes"},
	}
}

func rating(user, item int, value float64) Interaction {
	return Interaction{UserID: user, ItemID: item, Rating: value, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// scenarioB returns the five-rating fixture: user 1 rated A and B, user 2 rated everything.
func scenarioB() *memSource {
	return &memSource{
		items: threeItemCatalog(),
		interactions: []Interaction{
			rating(1, itemA, 5.0),
			rating(1, itemB, 1.0),
			rating(2, itemA, 4.0),
			rating(2, itemB, 5.0),
			rating(2, itemC, 3.0),
		},
	}
}

// testConfig disables the artifact cache so tests are independent.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.ContentWorkers = 2
	return cfg
}

// denseSource builds a catalog of sci-fi and romance titles with enough
// ratings to train the collaborative model.
func denseSource() *memSource {
	src := &memSource{}
	for i := 0; i < 20; i++ {
		item := Item{ID: 1000 + i}
		if i%2 == 0 {
			item.Genres = "Sci-Fi|Action"
			item.Overview = "starship crew explores distant galaxy"
		} else {
			item.Genres = "Romance|Comedy"
			item.Overview = "wedding planner falls in love"
		}
		src.items = append(src.items, item)
	}
	for u := 1; u <= 12; u++ {
		for i := 0; i < 20; i++ {
			if (u+i)%4 == 0 {
				continue
			}
			v := 2.0
			if (i%2 == 0) == (u%2 == 0) {
				v = 5.0
			}
			src.interactions = append(src.interactions, rating(u, 1000+i, v))
		}
	}
	return src
}

func newTestEngine(t *testing.T, src Source, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), src, nil, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}
