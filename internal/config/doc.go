// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads and validates Marquee configuration.
//
// Configuration is layered with Koanf v2, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, then config.yaml, /etc/marquee/config.yaml)
//  3. Environment variables (explicit mapping, unmapped variables are ignored)
//
// Example config.yaml:
//
//	database:
//	  path: /data/marquee.duckdb
//	recommend:
//	  refresh_interval: 6h
//	  cache:
//	    backend: badger
//	    invalidation: fingerprint
//	logging:
//	  level: debug
//	  format: console
package config
