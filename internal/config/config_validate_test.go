// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"rate limit disabled allows zero reqs", func(c *Config) {
			c.Server.RateLimitDisabled = true
			c.Server.RateLimitReqs = 0
		}, false},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative weight", func(c *Config) { c.Recommend.ContentWeight = -0.1 }, true},
		{"default n above max", func(c *Config) { c.Recommend.DefaultN = 500 }, true},
		{"zero max features", func(c *Config) { c.Recommend.Content.MaxFeatures = 0 }, true},
		{"inverted ngram range", func(c *Config) { c.Recommend.Content.MinNGram = 3 }, true},
		{"zero factors", func(c *Config) { c.Recommend.Collaborative.Factors = 0 }, true},
		{"test fraction one", func(c *Config) { c.Recommend.Collaborative.TestFraction = 1 }, true},
		{"empty rating scale", func(c *Config) { c.Recommend.Collaborative.RatingMax = 1 }, true},
		{"unknown backend", func(c *Config) { c.Recommend.Cache.Backend = "redis" }, true},
		{"unknown backend ignored when cache disabled", func(c *Config) {
			c.Recommend.Cache.Enabled = false
			c.Recommend.Cache.Backend = "redis"
		}, false},
		{"unknown corrupt policy", func(c *Config) { c.Recommend.Cache.OnCorrupt = "ignore" }, true},
		{"events without topic", func(c *Config) { c.Events.RefreshTopic = "" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
