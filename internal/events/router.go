// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Refresher rebuilds the recommendation engine.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) error
}

// TriggerEvent is the trigger name passed to the Refresher.
const TriggerEvent = "event"

const refreshHandlerName = "recommend_refresh"

// Router consumes refresh events and drives the Refresher.
type Router struct {
	router    *message.Router
	topic     string
	refresher Refresher
	log       *logging.EventLogger
}

// NewRouter creates a router subscribed to the bus refresh topic.
//
// Middleware, outermost first:
//   - drop: failures left after retries are logged and acked, never redelivered
//   - retry: failed refreshes are retried with exponential backoff
//   - recoverer: handler panics become errors
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(cfg *config.EventsConfig, bus *Bus, refresher Refresher, logger zerolog.Logger) (*Router, error) {
	wmLogger := logging.NewWatermillAdapter(logger.With().Str("component", "router").Logger())

	closeTimeout := cfg.CloseTimeout
	if closeTimeout <= 0 {
		closeTimeout = 10 * time.Second
	}
	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: closeTimeout}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{
		router:    wmRouter,
		topic:     bus.Topic(),
		refresher: refresher,
		log:       logging.NewEventLogger(logger),
	}

	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: interval,
		MaxInterval:     10 * interval,
		Multiplier:      2,
		Logger:          wmLogger,
	}

	wmRouter.AddMiddleware(r.drop)
	wmRouter.AddMiddleware(retry.Middleware)
	wmRouter.AddMiddleware(middleware.Recoverer)

	wmRouter.AddConsumerHandler(refreshHandlerName, bus.Topic(), bus.Subscriber(), r.handle)
	return r, nil
}

// handle decodes one refresh event and runs the refresh.
func (r *Router) handle(msg *message.Message) error {
	event, err := Unmarshal(msg.Payload)
	if err != nil {
		// Redelivery cannot fix a malformed payload.
		r.log.LogEventDropped(msg.UUID, err)
		metrics.EventsConsumed.WithLabelValues(r.topic, "dropped").Inc()
		return nil
	}

	ctx := msg.Context()
	if event.RequestID != "" {
		ctx = logging.ContextWithRequestID(ctx, event.RequestID)
	}
	r.log.LogEventReceived(ctx, event.EventID, event.Reason)

	start := time.Now()
	if err := r.refresher.Refresh(ctx, TriggerEvent); err != nil {
		return fmt.Errorf("refresh for event %s: %w", event.EventID, err)
	}

	metrics.EventsConsumed.WithLabelValues(r.topic, "success").Inc()
	r.log.LogEventProcessed(ctx, event.EventID, time.Since(start))
	return nil
}

// drop acks messages whose handler still fails after retries.
func (r *Router) drop(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			r.log.LogEventFailed(msg.Context(), msg.UUID, err)
			metrics.EventsConsumed.WithLabelValues(r.topic, "failure").Inc()
			return nil, nil
		}
		return out, nil
	}
}

// Run starts the router and blocks until ctx is cancelled or Close is
// called.
func (r *Router) Run(ctx context.Context) error {
	r.log.LogRouterStarted(r.topic)
	defer r.log.LogRouterStopped()

	err := r.router.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run router: %w", err)
	}
	return nil
}

// Running returns a channel closed once handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to the close timeout for in-flight
// handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
