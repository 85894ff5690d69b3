// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// initEvents creates the refresh event bus and registers its router with the
// messaging layer. Returns nil when events are disabled; refresh requests
// then run directly in the API process.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEvents(cfg *config.EventsConfig, refresher events.Refresher, logger zerolog.Logger, tree *supervisor.SupervisorTree) *events.Bus {
	if !cfg.Enabled {
		logger.Info().Msg("refresh event bus disabled (EVENTS_ENABLED=false)")
		return nil
	}

	bus := events.NewBus(cfg, logger)
	tree.AddMessagingService(services.NewEventRouterService(func() (services.EventRouter, error) {
		return events.NewRouter(cfg, bus, refresher, logger)
	}))

	logger.Info().
		Str("topic", bus.Topic()).
		Int("retry_max_retries", cfg.RetryMaxRetries).
		Msg("refresh event router added to supervisor tree")
	return bus
}
