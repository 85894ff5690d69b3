// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
)

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validCacheBackends = map[string]bool{
		"file": true, "badger": true,
	}
	validInvalidationPolicies = map[string]bool{
		"none": true, "fingerprint": true,
	}
	validCorruptPolicies = map[string]bool{
		"rebuild": true, "fail": true,
	}
)

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !c.Server.RateLimitDisabled && c.Server.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return errors.New("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend

	if r.MinInteractions < 0 {
		return fmt.Errorf("RECOMMEND_MIN_INTERACTIONS must be >= 0, got %d", r.MinInteractions)
	}
	if r.ContentWeight < 0 || r.CollaborativeWeight < 0 || r.WatchlistBoost < 0 {
		return errors.New("recommendation weights and watchlist boost must be non-negative")
	}
	if r.DefaultN < 1 || r.DefaultN > r.MaxN {
		return fmt.Errorf("RECOMMEND_DEFAULT_N (%d) must be within [1, RECOMMEND_MAX_N=%d]", r.DefaultN, r.MaxN)
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K (%d) must be within [1, RECOMMEND_MAX_K=%d]", r.DefaultK, r.MaxK)
	}

	if r.ResultCacheSize < 0 {
		return fmt.Errorf("RECOMMEND_RESULT_CACHE_SIZE must be >= 0, got %d", r.ResultCacheSize)
	}

	if r.Content.MaxFeatures < 1 {
		return fmt.Errorf("RECOMMEND_TFIDF_MAX_FEATURES must be positive, got %d", r.Content.MaxFeatures)
	}
	if r.Content.MinNGram < 1 || r.Content.MaxNGram < r.Content.MinNGram {
		return fmt.Errorf("invalid n-gram range [%d, %d]", r.Content.MinNGram, r.Content.MaxNGram)
	}

	cf := r.Collaborative
	if cf.Factors < 1 || cf.Epochs < 1 {
		return fmt.Errorf("RECOMMEND_SVD_FACTORS and RECOMMEND_SVD_EPOCHS must be positive, got %d and %d", cf.Factors, cf.Epochs)
	}
	if cf.LearningRate <= 0 || cf.Regularization < 0 || cf.InitStdDev < 0 {
		return errors.New("RECOMMEND_SVD_LEARNING_RATE must be positive and regularization/init_std_dev non-negative")
	}
	if cf.TestFraction < 0 || cf.TestFraction >= 1 {
		return fmt.Errorf("RECOMMEND_SVD_TEST_FRACTION must be in [0, 1), got %g", cf.TestFraction)
	}
	if cf.RatingMin >= cf.RatingMax {
		return fmt.Errorf("rating scale [%g, %g] is empty", cf.RatingMin, cf.RatingMax)
	}

	return c.validateCache()
}

func (c *Config) validateCache() error {
	cache := c.Recommend.Cache
	if !cache.Enabled {
		return nil
	}
	if cache.Path == "" {
		return errors.New("RECOMMEND_CACHE_PATH is required when the model cache is enabled")
	}
	if !validCacheBackends[cache.Backend] {
		return fmt.Errorf("RECOMMEND_CACHE_BACKEND must be one of: file, badger")
	}
	if !validInvalidationPolicies[cache.Invalidation] {
		return fmt.Errorf("RECOMMEND_CACHE_INVALIDATION must be one of: none, fingerprint")
	}
	if !validCorruptPolicies[cache.OnCorrupt] {
		return fmt.Errorf("RECOMMEND_CACHE_ON_CORRUPT must be one of: rebuild, fail")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.Enabled && c.Events.RefreshTopic == "" {
		return errors.New("EVENTS_REFRESH_TOPIC is required when events are enabled")
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be >= 0, got %d", c.Events.BufferSize)
	}
	if c.Events.RetryMaxRetries < 0 {
		return fmt.Errorf("EVENTS_RETRY_MAX_RETRIES must be >= 0, got %d", c.Events.RetryMaxRetries)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
