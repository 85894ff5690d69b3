// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache provides the in-memory LRU used to memoize API results.
//
// The API keys recommendation and similar-item lists by the build time of
// the engine that produced them, so swapping in a new engine makes every
// older entry unreachable; they age out by LRU order or TTL.
//
//	c := cache.NewLRU[[]int](10000, 5*time.Minute)
//	c.Add("rec:42:10:false:1718000000", ids)
//	if ids, ok := c.Get(key); ok {
//	    // serve cached ids
//	}
package cache
