// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import "sort"

// Popularity ranks items by count(ratings) * mean(rating).
//
// This is the cold-start ranking: it needs no user history and is computed
// once per build over the whole interaction table.
type Popularity struct {
	itemIDs []int
	scores  map[int]float64
}

// NewPopularity computes the ranking from ratings. Ties are ordered by
// ascending item id so the ranking is deterministic.
func NewPopularity(ratings []Rating) *Popularity {
	counts := make(map[int]int)
	sums := make(map[int]float64)
	for _, r := range ratings {
		counts[r.ItemID]++
		sums[r.ItemID] += r.Value
	}

	p := &Popularity{
		itemIDs: make([]int, 0, len(counts)),
		scores:  make(map[int]float64, len(counts)),
	}
	for id, c := range counts {
		mean := sums[id] / float64(c)
		p.scores[id] = float64(c) * mean
		p.itemIDs = append(p.itemIDs, id)
	}
	sort.Slice(p.itemIDs, func(i, j int) bool {
		a, b := p.itemIDs[i], p.itemIDs[j]
		if p.scores[a] != p.scores[b] {
			return p.scores[a] > p.scores[b]
		}
		return a < b
	})
	return p
}

// Len returns the number of ranked items.
func (p *Popularity) Len() int {
	return len(p.itemIDs)
}

// Score returns the popularity score of an item and whether it was rated at all.
func (p *Popularity) Score(itemID int) (float64, bool) {
	s, ok := p.scores[itemID]
	return s, ok
}

// TopK returns up to k item ids in descending popularity.
func (p *Popularity) TopK(k int) []int {
	if k <= 0 {
		return []int{}
	}
	if k > len(p.itemIDs) {
		k = len(p.itemIDs)
	}
	out := make([]int, k)
	copy(out, p.itemIDs[:k])
	return out
}
