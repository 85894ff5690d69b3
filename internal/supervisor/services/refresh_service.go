// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/recommend"
)

const defaultRefreshTimeout = 30 * time.Minute

// Refresher rebuilds the shared recommendation engine.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) error
}

// RefreshServiceConfig controls when the engine is rebuilt.
type RefreshServiceConfig struct {
	// OnStartup builds the engine as soon as the service starts.
	OnStartup bool

	// Interval between scheduled rebuilds. Zero disables them.
	Interval time.Duration

	// Timeout bounds a single build. Default: 30m
	Timeout time.Duration
}

// RefreshService owns the engine's build schedule.
type RefreshService struct {
	refresher Refresher
	config    RefreshServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewRefreshService creates a refresh service for refresher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(refresher Refresher, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRefreshTimeout
	}
	return &RefreshService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "refresh").Logger(),
		name:      "refresh-service",
	}
}

// Serve implements suture.Service. Build failures are logged, never
// returned, so a bad snapshot does not put the supervisor into backoff.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("refresh service starting")

	if s.config.OnStartup {
		if err := s.refresh(ctx, recommend.TriggerStartup); err != nil {
			s.logger.Warn().Err(err).Msg("startup build failed, engine will build on first use")
		}
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx, recommend.TriggerSchedule); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled refresh failed, previous engine kept")
			}
		}
	}
}

func (s *RefreshService) refresh(ctx context.Context, trigger string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.Refresh(ctx, trigger); err != nil {
		return err
	}
	s.logger.Debug().
		Str("trigger", trigger).
		Dur("duration", time.Since(start)).
		Msg("refresh complete")
	return nil
}

// String implements fmt.Stringer.
func (s *RefreshService) String() string {
	return s.name
}
