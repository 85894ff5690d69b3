// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/tomtom215/marquee/internal/recommend/algorithms"
)

// Cache invalidation policies.
const (
	// InvalidationNone reuses any existing artifact regardless of the data it was built from.
	InvalidationNone = "none"
	// InvalidationFingerprint rebuilds artifacts whose data fingerprint or schema version differs.
	InvalidationFingerprint = "fingerprint"
)

// Corrupt artifact policies.
const (
	OnCorruptRebuild = "rebuild"
	OnCorruptFail    = "fail"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines how content and collaborative scores are blended.
	Weights WeightsConfig `json:"weights"`

	// MinInteractions is the interaction count below which no collaborative
	// model is trained.
	MinInteractions int `json:"min_interactions"`

	// Content contains TF-IDF parameters.
	Content algorithms.TFIDFConfig `json:"content"`

	// ContentWorkers bounds the goroutines computing similarity rows (0 = NumCPU).
	ContentWorkers int `json:"content_workers"`

	// Collaborative contains matrix factorization parameters.
	Collaborative algorithms.SVDConfig `json:"collaborative"`

	// TestFraction is the share of ratings held out to measure RMSE.
	TestFraction float64 `json:"test_fraction"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains model artifact cache policy.
	Cache CachePolicy `json:"cache"`

	// Seed drives every random choice (split, initialisation, cold-start sample).
	Seed int64 `json:"seed"`
}

// WeightsConfig defines the hybrid scoring formula.
type WeightsConfig struct {
	// Content weights the scaled mean content similarity. Default 0.4.
	Content float64 `json:"content"`

	// Collaborative weights the predicted rating. Default 0.6.
	Collaborative float64 `json:"collaborative"`

	// WatchlistBoost is added for watchlisted items. Default 0.2.
	WatchlistBoost float64 `json:"watchlist_boost"`

	// ContentScale maps mean similarity onto the rating scale. Default 5.
	ContentScale float64 `json:"content_scale"`

	// NeutralRating stands in for an unavailable prediction. Default 3.
	NeutralRating float64 `json:"neutral_rating"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	DefaultN int `json:"default_n"`
	MaxN     int `json:"max_n"`
	DefaultK int `json:"default_k"`
	MaxK     int `json:"max_k"`
}

// CachePolicy controls model artifact reuse.
type CachePolicy struct {
	Enabled      bool   `json:"enabled"`
	Invalidation string `json:"invalidation"`
	OnCorrupt    string `json:"on_corrupt"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	svd := algorithms.DefaultSVDConfig()
	svd.Seed = 42

	return &Config{
		Weights: WeightsConfig{
			Content:        0.4,
			Collaborative:  0.6,
			WatchlistBoost: 0.2,
			ContentScale:   5.0,
			NeutralRating:  3.0,
		},
		MinInteractions: 100,
		Content:         algorithms.DefaultTFIDFConfig(),
		Collaborative:   svd,
		TestFraction:    0.2,
		Limits: LimitsConfig{
			DefaultN: 10,
			MaxN:     100,
			DefaultK: 5,
			MaxK:     50,
		},
		Cache: CachePolicy{
			Enabled:      true,
			Invalidation: InvalidationFingerprint,
			OnCorrupt:    OnCorruptRebuild,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 {
		return fmt.Errorf("weights.content must be non-negative, got %f", c.Weights.Content)
	}
	if c.Weights.Collaborative < 0 {
		return fmt.Errorf("weights.collaborative must be non-negative, got %f", c.Weights.Collaborative)
	}
	if c.Weights.ContentScale <= 0 {
		return fmt.Errorf("weights.content_scale must be positive, got %f", c.Weights.ContentScale)
	}
	if c.Weights.NeutralRating < c.Collaborative.RatingMin || c.Weights.NeutralRating > c.Collaborative.RatingMax {
		return fmt.Errorf("weights.neutral_rating must be within the rating scale [%g, %g], got %f",
			c.Collaborative.RatingMin, c.Collaborative.RatingMax, c.Weights.NeutralRating)
	}

	if c.MinInteractions < 0 {
		return fmt.Errorf("min_interactions must be non-negative, got %d", c.MinInteractions)
	}

	if c.Content.MaxFeatures < 1 {
		return fmt.Errorf("content.max_features must be positive, got %d", c.Content.MaxFeatures)
	}
	if c.Content.MinNGram < 1 || c.Content.MaxNGram < c.Content.MinNGram {
		return fmt.Errorf("content n-gram range [%d, %d] is invalid", c.Content.MinNGram, c.Content.MaxNGram)
	}
	if c.ContentWorkers < 0 {
		return fmt.Errorf("content_workers must be non-negative, got %d", c.ContentWorkers)
	}

	if c.Collaborative.NumFactors < 1 {
		return fmt.Errorf("collaborative.factors must be positive, got %d", c.Collaborative.NumFactors)
	}
	if c.Collaborative.NumEpochs < 1 {
		return fmt.Errorf("collaborative.epochs must be positive, got %d", c.Collaborative.NumEpochs)
	}
	if c.Collaborative.LearningRate <= 0 {
		return fmt.Errorf("collaborative.learning_rate must be positive, got %f", c.Collaborative.LearningRate)
	}
	if c.Collaborative.Regularization < 0 {
		return fmt.Errorf("collaborative.regularization must be non-negative, got %f", c.Collaborative.Regularization)
	}
	if c.Collaborative.RatingMax <= c.Collaborative.RatingMin {
		return fmt.Errorf("collaborative rating scale [%g, %g] is invalid", c.Collaborative.RatingMin, c.Collaborative.RatingMax)
	}
	if c.TestFraction < 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in [0, 1), got %f", c.TestFraction)
	}

	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	switch c.Cache.Invalidation {
	case InvalidationNone, InvalidationFingerprint:
	default:
		return fmt.Errorf("cache.invalidation must be one of: none, fingerprint, got %q", c.Cache.Invalidation)
	}
	switch c.Cache.OnCorrupt {
	case OnCorruptRebuild, OnCorruptFail:
	default:
		return fmt.Errorf("cache.on_corrupt must be one of: rebuild, fail, got %q", c.Cache.OnCorrupt)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// modelSalt hashes the parameters a model of the given kind is built with,
// so that a parameter change invalidates cached artifacts like a data change.
func (c *Config) modelSalt(kind ModelKind) uint64 {
	switch kind {
	case ModelContent:
		return xxhash.Sum64String(fmt.Sprintf("%+v", c.Content))
	case ModelCollaborative:
		return xxhash.Sum64String(fmt.Sprintf("%+v|%g|%d|%d", c.Collaborative, c.TestFraction, c.Seed, c.MinInteractions))
	default:
		return 0
	}
}
