// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/metrics"
)

// Refresh triggers, used as metric labels.
const (
	TriggerFirstUse = "first_use"
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerEvent    = "event"
	TriggerManual   = "manual"
)

// Provider holds the process-wide engine. The first caller builds it;
// Refresh replaces it with one built from fresh data.
// It is safe for concurrent use.
type Provider struct {
	src    Source
	cache  *ModelCache
	cfg    *Config
	logger zerolog.Logger

	mu     sync.RWMutex
	engine *Engine

	lastErr     error
	lastErrAt   time.Time
	refreshedAt time.Time

	group singleflight.Group
}

// NewProvider creates a provider. Nothing is built until first use or Refresh.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewProvider(src Source, cache *ModelCache, cfg *Config, logger zerolog.Logger) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Provider{
		src:    src,
		cache:  cache,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend_provider").Logger(),
	}
}

// Engine returns the current engine, building it on first use. Concurrent
// first callers share one build. The build is not cancelled when the
// caller's context is.
func (p *Provider) Engine(ctx context.Context) (*Engine, error) {
	p.mu.RLock()
	e := p.engine
	p.mu.RUnlock()
	if e != nil {
		return e, nil
	}

	v, err, _ := p.group.Do("build", func() (interface{}, error) {
		p.mu.RLock()
		current := p.engine
		p.mu.RUnlock()
		if current != nil {
			return current, nil
		}
		return p.build(context.WithoutCancel(ctx), TriggerFirstUse)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

// Refresh builds a new engine outside the lock and swaps it in. On failure
// the previous engine, if any, keeps serving and the error is returned.
// Concurrent refreshes collapse into one.
func (p *Provider) Refresh(ctx context.Context, trigger string) error {
	_, err, shared := p.group.Do("refresh", func() (interface{}, error) {
		return p.build(ctx, trigger)
	})
	if shared {
		p.logger.Debug().Str("trigger", trigger).Msg("joined in-flight refresh")
	}
	return err
}

func (p *Provider) build(ctx context.Context, trigger string) (*Engine, error) {
	start := time.Now()
	e, err := NewEngine(ctx, p.src, p.cache, p.cfg, p.logger)
	metrics.RecordRefresh(trigger, err)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.lastErr = err
		p.lastErrAt = time.Now()
		p.logger.Error().
			Err(err).
			Str("trigger", trigger).
			Bool("serving_previous", p.engine != nil).
			Msg("engine build failed")
		return nil, err
	}

	p.engine = e
	p.lastErr = nil
	p.refreshedAt = time.Now()
	p.logger.Info().
		Str("trigger", trigger).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("engine swapped in")
	return e, nil
}

// Ready reports whether an engine has been built.
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.engine != nil
}

// Recommend returns up to n item ids for userID. An error is returned only
// when no engine can be built.
func (p *Provider) Recommend(ctx context.Context, userID, n int, opts Options) ([]int, error) {
	e, err := p.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.RecommendWithOptions(ctx, userID, n, opts), nil
}

// SimilarItems returns up to k items similar to itemID. An error is returned
// only when no engine can be built.
func (p *Provider) SimilarItems(ctx context.Context, itemID, k int) ([]int, error) {
	e, err := p.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.SimilarItems(itemID, k), nil
}

// ProviderStatus extends the engine status with refresh bookkeeping.
type ProviderStatus struct {
	Status

	RefreshedAt time.Time `json:"refreshed_at,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	LastErrorAt time.Time `json:"last_error_at,omitempty"`
}

// Status describes the current engine without building one.
func (p *Provider) Status() ProviderStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var s ProviderStatus
	if p.engine != nil {
		s.Status = p.engine.Status()
	}
	s.RefreshedAt = p.refreshedAt
	if p.lastErr != nil {
		s.LastError = p.lastErr.Error()
		s.LastErrorAt = p.lastErrAt
	}
	return s
}

// Config returns a copy of the engine configuration.
func (p *Provider) Config() *Config {
	return p.cfg.Clone()
}
