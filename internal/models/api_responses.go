// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for every API response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Codes used by the API:
//   - VALIDATION_ERROR: a query parameter or body failed validation
//   - INVALID_USER_ID, INVALID_ITEM_ID: a path parameter is not an integer
//   - STORAGE_UNAVAILABLE: the data store could not be read
//   - RATE_LIMITED: too many requests
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationsResponse is the data of GET /users/{userID}/recommendations.
type RecommendationsResponse struct {
	UserID           int   `json:"user_id"`
	Items            []int `json:"items"`
	Count            int   `json:"count"`
	ExcludeWatchlist bool  `json:"exclude_watchlist"`
}

// SimilarItemsResponse is the data of GET /items/{itemID}/similar.
type SimilarItemsResponse struct {
	ItemID int   `json:"item_id"`
	Items  []int `json:"items"`
	Count  int   `json:"count"`
}

// RefreshAccepted is the data of POST /recommendations/refresh.
type RefreshAccepted struct {
	// EventID is set when the request was published on the event bus.
	EventID string `json:"event_id,omitempty"`
	Reason  string `json:"reason"`
	// Mode is "event" when published on the bus, "direct" when the refresh
	// was started in the background without the bus.
	Mode string `json:"mode"`
}

// HealthResponse is the data of the health endpoints.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version,omitempty"`
	Ready         bool    `json:"ready"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
