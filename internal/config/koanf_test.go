// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8484 {
		t.Errorf("Server.Port = %d, want 8484", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/marquee.duckdb" {
		t.Errorf("Database.Path = %q, want /data/marquee.duckdb", cfg.Database.Path)
	}

	r := cfg.Recommend
	if r.MinInteractions != 100 {
		t.Errorf("Recommend.MinInteractions = %d, want 100", r.MinInteractions)
	}
	if r.ContentWeight != 0.4 || r.CollaborativeWeight != 0.6 || r.WatchlistBoost != 0.2 {
		t.Errorf("unexpected hybrid weights: %+v", r)
	}
	if r.Content.MaxFeatures != 5000 || r.Content.MinNGram != 1 || r.Content.MaxNGram != 2 || !r.Content.StopWords {
		t.Errorf("unexpected content defaults: %+v", r.Content)
	}
	if r.Collaborative.Factors != 50 || r.Collaborative.Epochs != 20 || r.Seed != 42 {
		t.Errorf("unexpected collaborative defaults: %+v seed=%d", r.Collaborative, r.Seed)
	}
	if r.Cache.Invalidation != "fingerprint" || r.Cache.Backend != "file" {
		t.Errorf("unexpected cache defaults: %+v", r.Cache)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "server.cors_origins"},
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_BREAKER_FAILURES", "database.breaker_failures"},
		{"RECOMMEND_MIN_INTERACTIONS", "recommend.min_interactions"},
		{"RECOMMEND_TFIDF_MAX_FEATURES", "recommend.content.max_features"},
		{"RECOMMEND_SVD_FACTORS", "recommend.collaborative.factors"},
		{"RECOMMEND_CACHE_INVALIDATION", "recommend.cache.invalidation"},
		{"EVENTS_REFRESH_TOPIC", "events.refresh_topic"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_CACHE_BACKEND", "badger")
	t.Setenv("RECOMMEND_REFRESH_INTERVAL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Cache.Backend != "badger" {
		t.Errorf("Recommend.Cache.Backend = %q, want badger", cfg.Recommend.Cache.Backend)
	}
	if cfg.Recommend.RefreshInterval != 15*time.Minute {
		t.Errorf("Recommend.RefreshInterval = %v, want 15m", cfg.Recommend.RefreshInterval)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: /tmp/test.duckdb
recommend:
  min_interactions: 10
  cache:
    invalidation: none
    on_corrupt: fail
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("DUCKDB_PATH", "/tmp/override.duckdb")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/override.duckdb" {
		t.Errorf("env should override file: Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Recommend.MinInteractions != 10 {
		t.Errorf("Recommend.MinInteractions = %d, want 10", cfg.Recommend.MinInteractions)
	}
	if cfg.Recommend.Cache.Invalidation != "none" || cfg.Recommend.Cache.OnCorrupt != "fail" {
		t.Errorf("unexpected cache config: %+v", cfg.Recommend.Cache)
	}
	if cfg.Recommend.Collaborative.Factors != 50 {
		t.Errorf("defaults should survive a partial file, Factors = %d", cfg.Recommend.Collaborative.Factors)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RECOMMEND_CACHE_INVALIDATION", "sometimes")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for unknown invalidation policy")
	}
}
