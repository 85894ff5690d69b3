// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// DefaultRefreshTopic is used when the configuration leaves the topic empty.
const DefaultRefreshTopic = "recommend.refresh"

// Bus is an in-process pub/sub for refresh events. Messages published while
// no subscriber is attached are discarded.
type Bus struct {
	pubsub *gochannel.GoChannel
	topic  string
	log    *logging.EventLogger

	mu     sync.Mutex
	closed bool
}

// NewBus creates a bus backed by a Watermill Go channel pub/sub.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(cfg *config.EventsConfig, logger zerolog.Logger) *Bus {
	topic := cfg.RefreshTopic
	if topic == "" {
		topic = DefaultRefreshTopic
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, logging.NewWatermillAdapter(logger.With().Str("component", "pubsub").Logger()))

	return &Bus{
		pubsub: pubsub,
		topic:  topic,
		log:    logging.NewEventLogger(logger),
	}
}

// Topic returns the refresh topic name.
func (b *Bus) Topic() string {
	return b.topic
}

// Subscriber returns the subscriber side of the bus for routers.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// PublishRefresh publishes a refresh request and returns its event id.
func (b *Bus) PublishRefresh(ctx context.Context, reason string) (string, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return "", ErrBusClosed
	}

	event := &RefreshEvent{
		EventID:     uuid.NewString(),
		Reason:      reason,
		RequestID:   logging.RequestIDFromContext(ctx),
		RequestedAt: time.Now().UTC(),
	}
	data, err := Marshal(event)
	if err != nil {
		return "", err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("reason", reason)
	if event.RequestID != "" {
		msg.Metadata.Set("request_id", event.RequestID)
	}

	if err := b.pubsub.Publish(b.topic, msg); err != nil {
		return "", fmt.Errorf("publish refresh event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(b.topic).Inc()
	b.log.LogEventPublished(ctx, event.EventID, b.topic, reason)
	return event.EventID, nil
}

// Close shuts the pub/sub down. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
