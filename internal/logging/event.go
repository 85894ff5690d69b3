// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// EventLogger provides logging for refresh event publishing and handling.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates an EventLogger tagged with the events component.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEventLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// loggerWithContext adds the request id carried by ctx, if any.
func (e *EventLogger) loggerWithContext(ctx context.Context) zerolog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return e.logger.With().Str("request_id", id).Logger()
	}
	return e.logger
}

// LogEventPublished logs when an event is published.
func (e *EventLogger) LogEventPublished(ctx context.Context, eventID, topic, reason string) {
	l := e.loggerWithContext(ctx)
	l.Debug().Str("event_id", eventID).Str("topic", topic).Str("reason", reason).Msg("event published")
}

// LogEventReceived logs when an event is received.
func (e *EventLogger) LogEventReceived(ctx context.Context, eventID, reason string) {
	l := e.loggerWithContext(ctx)
	l.Info().Str("event_id", eventID).Str("reason", reason).Msg("event received")
}

// LogEventProcessed logs when an event is successfully processed.
func (e *EventLogger) LogEventProcessed(ctx context.Context, eventID string, duration time.Duration) {
	l := e.loggerWithContext(ctx)
	l.Info().Str("event_id", eventID).Int64("duration_ms", duration.Milliseconds()).Msg("event processed")
}

// LogEventFailed logs when event processing fails.
func (e *EventLogger) LogEventFailed(ctx context.Context, eventID string, err error) {
	l := e.loggerWithContext(ctx)
	l.Error().Str("event_id", eventID).Err(err).Msg("event processing failed")
}

// LogEventDropped logs a message that could not be decoded and is acked
// without processing.
func (e *EventLogger) LogEventDropped(eventID string, err error) {
	e.logger.Warn().Str("event_id", eventID).Err(err).Msg("malformed event dropped")
}

// LogRouterStarted logs when the event router starts.
func (e *EventLogger) LogRouterStarted(topic string) {
	e.logger.Info().Str("topic", topic).Msg("router started")
}

// LogRouterStopped logs when the event router stops.
func (e *EventLogger) LogRouterStopped() {
	e.logger.Info().Msg("router stopped")
}
