// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"testing"
)

func TestLoadSnapshot(t *testing.T) {
	src := scenarioB()
	src.watchlist = []WatchlistEntry{{UserID: 1, ItemID: itemC}}

	snap, err := LoadSnapshot(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if row, ok := snap.ItemRow(itemB); !ok || row != 1 {
		t.Errorf("ItemRow(B) = %d, %v, want 1, true", row, ok)
	}
	if _, ok := snap.ItemRow(999); ok {
		t.Error("ItemRow(unknown) reported ok")
	}
	if got := len(snap.UserInteractions(2)); got != 3 {
		t.Errorf("UserInteractions(2) = %d rows, want 3", got)
	}
	if got := snap.UserInteractions(42); len(got) != 0 {
		t.Errorf("UserInteractions(unknown) = %v, want empty", got)
	}
	if !snap.HasRated(1, itemA) || snap.HasRated(1, itemC) {
		t.Error("HasRated() wrong for user 1")
	}
	if !snap.IsWatchlisted(1, itemC) || snap.IsWatchlisted(2, itemC) {
		t.Error("IsWatchlisted() wrong")
	}
	if snap.UserCount() != 2 {
		t.Errorf("UserCount() = %d, want 2", snap.UserCount())
	}
}

func TestLoadSnapshot_Error(t *testing.T) {
	_, err := LoadSnapshot(context.Background(), &memSource{err: errStorageDown})
	if !errors.Is(err, ErrStorageUnavailable) || !errors.Is(err, errStorageDown) {
		t.Errorf("LoadSnapshot() error = %v, want ErrStorageUnavailable wrapping the cause", err)
	}
}

func TestSnapshot_DuplicateItemID(t *testing.T) {
	snap := NewSnapshot([]Item{{ID: 1}, {ID: 2}, {ID: 1}}, nil, nil)
	if row, _ := snap.ItemRow(1); row != 0 {
		t.Errorf("ItemRow(1) = %d, want first occurrence 0", row)
	}
}

func TestSnapshot_Fingerprint(t *testing.T) {
	base := func() *Snapshot {
		src := scenarioB()
		return NewSnapshot(src.items, src.interactions, nil)
	}

	tests := []struct {
		name        string
		mutate      func(s *Snapshot) *Snapshot
		contentSame bool
		collabSame  bool
	}{
		{
			name:        "identical data",
			mutate:      func(s *Snapshot) *Snapshot { return s },
			contentSame: true,
			collabSame:  true,
		},
		{
			name: "title change does not matter",
			mutate: func(s *Snapshot) *Snapshot {
				items := append([]Item(nil), s.Items...)
				items[0].Title = "Renamed"
				return NewSnapshot(items, s.Interactions, nil)
			},
			contentSame: true,
			collabSame:  true,
		},
		{
			name: "overview change",
			mutate: func(s *Snapshot) *Snapshot {
				items := append([]Item(nil), s.Items...)
				items[0].Overview = "new synopsis"
				return NewSnapshot(items, s.Interactions, nil)
			},
			contentSame: false,
			collabSame:  true,
		},
		{
			name: "new rating",
			mutate: func(s *Snapshot) *Snapshot {
				return NewSnapshot(s.Items, append(append([]Interaction(nil), s.Interactions...), rating(3, itemA, 2)), nil)
			},
			contentSame: true,
			collabSame:  false,
		},
		{
			name: "watchlist does not matter",
			mutate: func(s *Snapshot) *Snapshot {
				return NewSnapshot(s.Items, s.Interactions, []WatchlistEntry{{UserID: 1, ItemID: itemA}})
			},
			contentSame: true,
			collabSame:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			b := tt.mutate(base())
			if got := a.Fingerprint(ModelContent) == b.Fingerprint(ModelContent); got != tt.contentSame {
				t.Errorf("content fingerprints equal = %v, want %v", got, tt.contentSame)
			}
			if got := a.Fingerprint(ModelCollaborative) == b.Fingerprint(ModelCollaborative); got != tt.collabSame {
				t.Errorf("collaborative fingerprints equal = %v, want %v", got, tt.collabSame)
			}
		})
	}

	s := base()
	if s.Fingerprint(ModelContent) == s.Fingerprint(ModelCollaborative) {
		t.Error("content and collaborative fingerprints collide")
	}
}
