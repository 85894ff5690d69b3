// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8484,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path:            "/data/marquee.duckdb",
			MaxMemory:       "1GB",
			QueryTimeout:    30 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Recommend: RecommendConfig{
			RefreshInterval:     6 * time.Hour,
			RefreshOnStartup:    true,
			MinInteractions:     100,
			ContentWeight:       0.4,
			CollaborativeWeight: 0.6,
			WatchlistBoost:      0.2,
			ContentScale:        5.0,
			NeutralRating:       3.0,
			DefaultN:            20,
			MaxN:                100,
			DefaultK:            5,
			MaxK:                50,
			Seed:                42,
			ResultCacheSize:     10000,
			ResultCacheTTL:      5 * time.Minute,
			Content: ContentConfig{
				MaxFeatures: 5000,
				MinNGram:    1,
				MaxNGram:    2,
				StopWords:   true,
			},
			Collaborative: CollaborativeConfig{
				Factors:        50,
				Epochs:         20,
				LearningRate:   0.005,
				Regularization: 0.02,
				InitStdDev:     0.1,
				TestFraction:   0.2,
				RatingMin:      1,
				RatingMax:      5,
			},
			Cache: CacheConfig{
				Enabled:      true,
				Backend:      "file",
				Path:         "/data/recommend",
				Invalidation: "fingerprint",
				OnCorrupt:    "rebuild",
			},
		},
		Events: EventsConfig{
			Enabled:         true,
			RefreshTopic:    "recommend.refresh",
			BufferSize:      16,
			CloseTimeout:    10 * time.Second,
			RetryMaxRetries: 2,
			RetryInterval:   time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults and validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" when there is none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":           "server.port",
	"http_host":           "server.host",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Database
	"duckdb_path":             "database.path",
	"duckdb_max_memory":       "database.max_memory",
	"duckdb_threads":          "database.threads",
	"duckdb_query_timeout":    "database.query_timeout",
	"duckdb_breaker_failures": "database.breaker_failures",
	"duckdb_breaker_timeout":  "database.breaker_timeout",

	// Recommendation engine
	"recommend_refresh_interval":     "recommend.refresh_interval",
	"recommend_refresh_on_startup":   "recommend.refresh_on_startup",
	"recommend_min_interactions":     "recommend.min_interactions",
	"recommend_content_weight":       "recommend.content_weight",
	"recommend_collaborative_weight": "recommend.collaborative_weight",
	"recommend_watchlist_boost":      "recommend.watchlist_boost",
	"recommend_content_scale":        "recommend.content_scale",
	"recommend_neutral_rating":       "recommend.neutral_rating",
	"recommend_default_n":            "recommend.default_n",
	"recommend_max_n":                "recommend.max_n",
	"recommend_default_k":            "recommend.default_k",
	"recommend_max_k":                "recommend.max_k",
	"recommend_seed":                 "recommend.seed",
	"recommend_result_cache_size":    "recommend.result_cache_size",
	"recommend_result_cache_ttl":     "recommend.result_cache_ttl",
	// Content model
	"recommend_tfidf_max_features": "recommend.content.max_features",
	"recommend_tfidf_min_ngram":    "recommend.content.min_ngram",
	"recommend_tfidf_max_ngram":    "recommend.content.max_ngram",
	"recommend_tfidf_stop_words":   "recommend.content.stop_words",
	"recommend_tfidf_workers":      "recommend.content.workers",
	// Collaborative model
	"recommend_svd_factors":        "recommend.collaborative.factors",
	"recommend_svd_epochs":         "recommend.collaborative.epochs",
	"recommend_svd_learning_rate":  "recommend.collaborative.learning_rate",
	"recommend_svd_regularization": "recommend.collaborative.regularization",
	"recommend_svd_init_std_dev":   "recommend.collaborative.init_std_dev",
	"recommend_svd_test_fraction":  "recommend.collaborative.test_fraction",
	// Model cache
	"recommend_cache_enabled":      "recommend.cache.enabled",
	"recommend_cache_backend":      "recommend.cache.backend",
	"recommend_cache_path":         "recommend.cache.path",
	"recommend_cache_invalidation": "recommend.cache.invalidation",
	"recommend_cache_on_corrupt":   "recommend.cache.on_corrupt",

	// Events
	"events_enabled":           "events.enabled",
	"events_refresh_topic":     "events.refresh_topic",
	"events_buffer_size":       "events.buffer_size",
	"events_close_timeout":     "events.close_timeout",
	"events_retry_max_retries": "events.retry_max_retries",
	"events_retry_interval":    "events.retry_interval",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - RECOMMEND_CACHE_INVALIDATION -> recommend.cache.invalidation
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
