// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based structured logging for Marquee.
//
// The package owns the global logger and a few adapters so that libraries with
// their own logging interfaces write through the same zerolog pipeline:
//
//   - SlogHandler bridges log/slog (used by sutureslog for supervisor events)
//   - WatermillAdapter bridges watermill.LoggerAdapter (refresh event router)
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("items", n).Msg("Snapshot loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Cache artifact rejected")
//
// Component loggers carry a "component" field:
//
//	logger := logging.WithComponent("recommend")
//
// Always terminate event chains with .Msg() or .Send(); an unterminated chain is
// never written.
package logging
