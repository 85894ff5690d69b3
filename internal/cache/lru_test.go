// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[[]int], *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewLRU[[]int](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_GetAdd(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", []int{1, 2})
	c.Add("b", []int{3})

	got, ok := c.Get("a")
	if !ok || !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Get(a) = %v, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Add("a", []int{9})
	if got, _ := c.Get("a"); !slices.Equal(got, []int{9}) {
		t.Errorf("Get(a) after replace = %v, want [9]", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 2 {
		t.Errorf("Stats() = %d, %d, %d; want 2, 1, 2", hits, misses, size)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)
	for _, k := range []string{"a", "b", "c"} {
		c.Add(k, nil)
	}

	c.Get("a")
	c.Add("d", nil)

	tests := []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"b", false},
		{"c", true},
		{"d", true},
	}
	for _, tt := range tests {
		if _, ok := c.Get(tt.key); ok != tt.want {
			t.Errorf("Get(%q) present = %v, want %v", tt.key, ok, tt.want)
		}
	}
}

func TestLRU_TTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)
	c.Add("a", []int{1})
	c.Add("b", []int{2})

	clock.Advance(30 * time.Second)
	c.Add("c", []int{3})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	clock.Advance(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should miss after TTL")
	}
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1 (b)", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c, _ := newTestLRU(0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}

	c.Add("a", nil)
	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Add("x", nil)
	c.Add("y", nil)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Add("z", nil)
	if _, ok := c.Get("z"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](50, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*31+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity 50", c.Len())
	}
}
