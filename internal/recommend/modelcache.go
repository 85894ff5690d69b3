// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// ErrCorruptArtifact is returned when a cached model cannot be read and the
// corrupt-artifact policy is "fail".
var ErrCorruptArtifact = errors.New("corrupt model artifact")

// Cache lookup results, used as metric labels.
const (
	lookupHit      = "hit"
	lookupMiss     = "miss"
	lookupStale    = "stale"
	lookupCorrupt  = "corrupt"
	lookupDisabled = "disabled"
	lookupError    = "error"
)

// ModelCache persists built models between engine builds and process restarts.
// A nil *ModelCache is valid and behaves as a disabled cache.
type ModelCache struct {
	store *storage.Store
}

// NewModelCache wraps an artifact store.
func NewModelCache(store *storage.Store) *ModelCache {
	return &ModelCache{store: store}
}

// OpenModelCache opens the backend named by kind ("file" or "badger") at dir.
func OpenModelCache(kind, dir string) (*ModelCache, error) {
	backend, err := storage.Open(kind, dir)
	if err != nil {
		return nil, err
	}
	return NewModelCache(storage.NewStore(backend)), nil
}

// Close releases the underlying storage.
func (c *ModelCache) Close() error {
	if c == nil {
		return nil
	}
	return c.store.Close()
}

// Metadata returns the stored metadata for a model key.
func (c *ModelCache) Metadata(ctx context.Context, key string) (*storage.ModelMetadata, error) {
	if c == nil {
		return nil, storage.ErrNotFound
	}
	return c.store.Metadata(ctx, key)
}

// load reads the artifact under key into target and applies the policy.
// It reports whether target now holds a usable model.
func (c *ModelCache) load(ctx context.Context, policy CachePolicy, kind ModelKind, key string, fingerprint uint64, target any, logger zerolog.Logger) (bool, error) {
	if c == nil || !policy.Enabled {
		metrics.RecordCacheLookup(string(kind), lookupDisabled)
		return false, nil
	}

	meta, err := c.store.Load(ctx, key, target)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		metrics.RecordCacheLookup(string(kind), lookupMiss)
		return false, nil
	case errors.Is(err, storage.ErrCorrupt), errors.Is(err, storage.ErrChecksumMismatch):
		metrics.RecordCacheLookup(string(kind), lookupCorrupt)
		if policy.OnCorrupt == OnCorruptFail {
			return false, fmt.Errorf("%w: %s: %w", ErrCorruptArtifact, key, err)
		}
		logger.Warn().Err(err).Str("key", key).Msg("cached model is corrupt, rebuilding")
		return false, nil
	default:
		metrics.RecordCacheLookup(string(kind), lookupError)
		logger.Warn().Err(err).Str("key", key).Msg("failed to read cached model, rebuilding")
		return false, nil
	}

	if policy.Invalidation == InvalidationFingerprint &&
		(meta.SchemaVersion != storage.SchemaVersion || meta.Fingerprint != fingerprint) {
		metrics.RecordCacheLookup(string(kind), lookupStale)
		logger.Info().
			Str("key", key).
			Int("schema_version", meta.SchemaVersion).
			Uint64("fingerprint", meta.Fingerprint).
			Uint64("want_fingerprint", fingerprint).
			Msg("cached model is stale, rebuilding")
		return false, nil
	}

	metrics.RecordCacheLookup(string(kind), lookupHit)
	logger.Info().
		Str("key", key).
		Time("trained_at", meta.TrainedAt).
		Msg("loaded cached model")
	return true, nil
}

// save writes a freshly built model. Failures are logged and otherwise ignored.
func (c *ModelCache) save(ctx context.Context, policy CachePolicy, key string, model any, fingerprint uint64, rows int, trainedAt time.Time, took time.Duration, logger zerolog.Logger) {
	if c == nil || !policy.Enabled {
		return
	}
	err := c.store.Save(ctx, key, model, storage.ModelMetadata{
		SchemaVersion:   storage.SchemaVersion,
		Fingerprint:     fingerprint,
		Rows:            rows,
		TrainedAt:       trainedAt,
		BuildDurationMS: took.Milliseconds(),
	})
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to persist model")
		return
	}
	logger.Debug().Str("key", key).Msg("persisted model")
}
