// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/recommend/storage"
)

func newTestCache(t *testing.T) (*ModelCache, *storage.FileBackend) {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	return NewModelCache(storage.NewStore(backend)), backend
}

func cachedConfig(invalidation, onCorrupt string) *Config {
	cfg := testConfig()
	cfg.Cache = CachePolicy{Enabled: true, Invalidation: invalidation, OnCorrupt: onCorrupt}
	return cfg
}

func TestModelCache_ReusesArtifacts(t *testing.T) {
	cache, _ := newTestCache(t)
	cfg := cachedConfig(InvalidationFingerprint, OnCorruptRebuild)
	ctx := context.Background()

	first, err := NewEngine(ctx, denseSource(), cache, cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if s := first.Status(); s.ContentSource != SourceBuilt || s.CollabSource != SourceBuilt {
		t.Fatalf("first build sources = %s/%s, want built/built", s.ContentSource, s.CollabSource)
	}

	second, err := NewEngine(ctx, denseSource(), cache, cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if s := second.Status(); s.ContentSource != SourceCache || s.CollabSource != SourceCache {
		t.Fatalf("second build sources = %s/%s, want cache/cache", s.ContentSource, s.CollabSource)
	}

	for user := 1; user <= 4; user++ {
		a := first.Recommend(ctx, user, 5)
		b := second.Recommend(ctx, user, 5)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("user %d: fresh %v vs cached %v", user, a, b)
		}
	}
	if !reflect.DeepEqual(first.SimilarItems(1000, 4), second.SimilarItems(1000, 4)) {
		t.Error("cached content model gives different similar items")
	}

	meta, err := cache.Metadata(ctx, storage.KeyContentModel)
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if meta.SchemaVersion != storage.SchemaVersion || meta.Rows != 20 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestModelCache_Invalidation(t *testing.T) {
	tests := []struct {
		name         string
		invalidation string
		want         ModelSource
	}{
		{"fingerprint rebuilds after data change", InvalidationFingerprint, SourceBuilt},
		{"none serves the stale artifact", InvalidationNone, SourceCache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, _ := newTestCache(t)
			cfg := cachedConfig(tt.invalidation, OnCorruptRebuild)
			ctx := context.Background()

			if _, err := NewEngine(ctx, scenarioB(), cache, cfg, zerolog.Nop()); err != nil {
				t.Fatal(err)
			}

			changed := scenarioB()
			changed.items[2].Overview = "a lighthouse keeper discovers a new planet"
			e, err := NewEngine(ctx, changed, cache, cfg, zerolog.Nop())
			if err != nil {
				t.Fatal(err)
			}
			if got := e.Status().ContentSource; got != tt.want {
				t.Errorf("ContentSource = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestModelCache_ParameterChangeInvalidates(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cfg := cachedConfig(InvalidationFingerprint, OnCorruptRebuild)
	if _, err := NewEngine(ctx, scenarioB(), cache, cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	cfg2 := cachedConfig(InvalidationFingerprint, OnCorruptRebuild)
	cfg2.Content.MaxNGram = 1
	e, err := NewEngine(ctx, scenarioB(), cache, cfg2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Status().ContentSource; got != SourceBuilt {
		t.Errorf("ContentSource = %s, want built after a TF-IDF parameter change", got)
	}
}

func TestModelCache_CorruptArtifact(t *testing.T) {
	tests := []struct {
		name      string
		onCorrupt string
		wantErr   bool
	}{
		{"rebuild policy", OnCorruptRebuild, false},
		{"fail policy", OnCorruptFail, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, backend := newTestCache(t)
			if err := os.WriteFile(backend.Path(storage.KeyContentModel), []byte("garbage"), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg := cachedConfig(InvalidationFingerprint, tt.onCorrupt)
			e, err := NewEngine(context.Background(), scenarioB(), cache, cfg, zerolog.Nop())
			if tt.wantErr {
				if !errors.Is(err, ErrCorruptArtifact) {
					t.Fatalf("NewEngine() error = %v, want ErrCorruptArtifact", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if got := e.Status().ContentSource; got != SourceBuilt {
				t.Errorf("ContentSource = %s, want built", got)
			}

			// The rebuilt model replaced the corrupt artifact.
			if _, err := cache.Metadata(context.Background(), storage.KeyContentModel); err != nil {
				t.Errorf("Metadata() after rebuild error = %v", err)
			}
		})
	}
}

func TestModelCache_Disabled(t *testing.T) {
	cache, backend := newTestCache(t)
	cfg := testConfig()

	if _, err := NewEngine(context.Background(), scenarioB(), cache, cfg, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(backend.Path(storage.KeyContentModel)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("artifact written with cache disabled: %v", err)
	}
}

func TestModelCache_NilIsDisabled(t *testing.T) {
	var cache *ModelCache
	if err := cache.Close(); err != nil {
		t.Errorf("Close() on nil cache error = %v", err)
	}
	if _, err := cache.Metadata(context.Background(), storage.KeyContentModel); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Metadata() on nil cache error = %v, want ErrNotFound", err)
	}
}
