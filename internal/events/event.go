// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package events carries model refresh requests over an in-process Watermill
pub/sub.

Publishers (the HTTP API, operators) emit a RefreshEvent on the refresh
topic; a router subscribed to that topic rebuilds the recommendation engine.
Concurrent refreshes are coalesced by the provider, so bursts of events
cost at most one extra rebuild.
*/
package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ErrInvalidEvent is returned for events that fail validation.
var ErrInvalidEvent = errors.New("invalid refresh event")

// RefreshEvent asks the engine to reload its snapshot and rebuild models.
type RefreshEvent struct {
	EventID     string    `json:"event_id"`
	Reason      string    `json:"reason"`
	RequestID   string    `json:"request_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Validate checks required fields.
func (e *RefreshEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidEvent)
	}
	return nil
}

// Marshal validates and encodes an event.
func Marshal(event *RefreshEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates an event.
func Unmarshal(data []byte) (*RefreshEvent, error) {
	var event RefreshEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}
