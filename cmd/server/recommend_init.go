// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// RecommendComponents holds the recommendation-related components.
type RecommendComponents struct {
	Provider *recommend.Provider
	Cache    *recommend.ModelCache
	Service  *services.RefreshService
}

// Close releases the model cache.
func (c *RecommendComponents) Close() error {
	return c.Cache.Close()
}

// initRecommend builds the provider over src and registers its refresh
// service with the engine layer.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, src recommend.Source, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*RecommendComponents, error) {
	engineCfg := buildEngineConfig(&cfg.Recommend)
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	var cache *recommend.ModelCache
	if cfg.Recommend.Cache.Enabled {
		var err error
		cache, err = recommend.OpenModelCache(cfg.Recommend.Cache.Backend, cfg.Recommend.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open model cache: %w", err)
		}
		logger.Info().
			Str("backend", cfg.Recommend.Cache.Backend).
			Str("path", cfg.Recommend.Cache.Path).
			Str("invalidation", cfg.Recommend.Cache.Invalidation).
			Msg("model cache opened")
	} else {
		logger.Info().Msg("model cache disabled (RECOMMEND_CACHE_ENABLED=false)")
	}

	provider := recommend.NewProvider(src, cache, engineCfg, logger)

	service := services.NewRefreshService(provider, services.RefreshServiceConfig{
		OnStartup: cfg.Recommend.RefreshOnStartup,
		Interval:  cfg.Recommend.RefreshInterval,
	}, logger)
	tree.AddEngineService(service)

	logger.Info().
		Dur("refresh_interval", cfg.Recommend.RefreshInterval).
		Bool("refresh_on_startup", cfg.Recommend.RefreshOnStartup).
		Int("min_interactions", cfg.Recommend.MinInteractions).
		Msg("recommendation refresh service added to supervisor tree")

	return &RecommendComponents{
		Provider: provider,
		Cache:    cache,
		Service:  service,
	}, nil
}

// buildEngineConfig maps application config onto the engine configuration.
// The engine keeps its own default n of 10 for direct callers; the API
// applies cfg.DefaultN before calling it.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	engineCfg := recommend.DefaultConfig()

	engineCfg.Weights = recommend.WeightsConfig{
		Content:        cfg.ContentWeight,
		Collaborative:  cfg.CollaborativeWeight,
		WatchlistBoost: cfg.WatchlistBoost,
		ContentScale:   cfg.ContentScale,
		NeutralRating:  cfg.NeutralRating,
	}
	engineCfg.MinInteractions = cfg.MinInteractions

	engineCfg.Content.MaxFeatures = cfg.Content.MaxFeatures
	engineCfg.Content.MinNGram = cfg.Content.MinNGram
	engineCfg.Content.MaxNGram = cfg.Content.MaxNGram
	engineCfg.Content.StopWords = cfg.Content.StopWords
	engineCfg.ContentWorkers = cfg.Content.Workers

	engineCfg.Collaborative.NumFactors = cfg.Collaborative.Factors
	engineCfg.Collaborative.NumEpochs = cfg.Collaborative.Epochs
	engineCfg.Collaborative.LearningRate = cfg.Collaborative.LearningRate
	engineCfg.Collaborative.Regularization = cfg.Collaborative.Regularization
	engineCfg.Collaborative.InitStdDev = cfg.Collaborative.InitStdDev
	engineCfg.Collaborative.RatingMin = cfg.Collaborative.RatingMin
	engineCfg.Collaborative.RatingMax = cfg.Collaborative.RatingMax
	engineCfg.Collaborative.Seed = cfg.Seed
	engineCfg.TestFraction = cfg.Collaborative.TestFraction

	engineCfg.Limits.MaxN = cfg.MaxN
	engineCfg.Limits.DefaultN = min(engineCfg.Limits.DefaultN, cfg.MaxN)
	engineCfg.Limits.DefaultK = cfg.DefaultK
	engineCfg.Limits.MaxK = cfg.MaxK

	engineCfg.Cache = recommend.CachePolicy{
		Enabled:      cfg.Cache.Enabled,
		Invalidation: cfg.Cache.Invalidation,
		OnCorrupt:    cfg.Cache.OnCorrupt,
	}
	engineCfg.Seed = cfg.Seed

	return engineCfg
}
