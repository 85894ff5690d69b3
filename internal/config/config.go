// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              int           `koanf:"port"`
	Host              string        `koanf:"host"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig holds DuckDB settings for the catalog/ratings/watchlist store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default

	// QueryTimeout bounds each snapshot read.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// BreakerFailures is the number of consecutive failed snapshot reads that
	// opens the circuit breaker; BreakerTimeout is how long it stays open.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// RefreshInterval is how often the shared engine is rebuilt. 0 disables periodic refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// RefreshOnStartup builds the engine as soon as the service starts instead of on first request.
	RefreshOnStartup bool `koanf:"refresh_on_startup"`

	// MinInteractions is the interaction count below which no collaborative model is trained.
	MinInteractions int `koanf:"min_interactions"`

	ContentWeight       float64 `koanf:"content_weight"`
	CollaborativeWeight float64 `koanf:"collaborative_weight"`
	WatchlistBoost      float64 `koanf:"watchlist_boost"`
	ContentScale        float64 `koanf:"content_scale"`
	NeutralRating       float64 `koanf:"neutral_rating"`

	DefaultN int `koanf:"default_n"`
	MaxN     int `koanf:"max_n"`
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	Seed int64 `koanf:"seed"`

	// ResultCacheSize bounds the API's in-memory result cache; 0 disables it.
	// Entries are keyed by engine build so a refresh invalidates them.
	ResultCacheSize int           `koanf:"result_cache_size"`
	ResultCacheTTL  time.Duration `koanf:"result_cache_ttl"`

	Content       ContentConfig       `koanf:"content"`
	Collaborative CollaborativeConfig `koanf:"collaborative"`
	Cache         CacheConfig         `koanf:"cache"`
}

// ContentConfig holds TF-IDF settings.
type ContentConfig struct {
	MaxFeatures int  `koanf:"max_features"`
	MinNGram    int  `koanf:"min_ngram"`
	MaxNGram    int  `koanf:"max_ngram"`
	StopWords   bool `koanf:"stop_words"`
	Workers     int  `koanf:"workers"` // 0 = runtime.NumCPU()
}

// CollaborativeConfig holds matrix factorization settings.
type CollaborativeConfig struct {
	Factors        int     `koanf:"factors"`
	Epochs         int     `koanf:"epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`
	InitStdDev     float64 `koanf:"init_std_dev"`
	TestFraction   float64 `koanf:"test_fraction"`
	RatingMin      float64 `koanf:"rating_min"`
	RatingMax      float64 `koanf:"rating_max"`
}

// CacheConfig holds model artifact cache settings.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Backend is "file" (one artifact file per model) or "badger" (embedded KV store).
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`

	// Invalidation is "none" (an existing artifact is always used) or
	// "fingerprint" (artifacts built from different data are rebuilt).
	Invalidation string `koanf:"invalidation"`

	// OnCorrupt is "rebuild" or "fail".
	OnCorrupt string `koanf:"on_corrupt"`
}

// EventsConfig holds the in-process refresh event bus settings.
type EventsConfig struct {
	Enabled      bool          `koanf:"enabled"`
	RefreshTopic string        `koanf:"refresh_topic"`
	BufferSize   int64         `koanf:"buffer_size"`
	CloseTimeout time.Duration `koanf:"close_timeout"`

	// RetryMaxRetries and RetryInterval control how often a failed refresh
	// is retried before the event is dropped.
	RetryMaxRetries int           `koanf:"retry_max_retries"`
	RetryInterval   time.Duration `koanf:"retry_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
