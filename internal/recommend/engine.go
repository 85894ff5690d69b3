// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/recommend/storage"
)

// Engine owns one data snapshot and the models built from it.
// It is immutable after NewEngine returns and safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger

	snapshot   *Snapshot
	content    *algorithms.ContentModel
	collab     *algorithms.SVD // nil when there is not enough data
	popularity *algorithms.Popularity
	coldSample []int

	status Status
}

// NewEngine loads a snapshot from src and builds (or loads from cache) the
// content and collaborative models. The two models are built concurrently.
// cache may be nil. The only data error returned is ErrStorageUnavailable;
// a corrupt artifact under the "fail" policy returns ErrCorruptArtifact.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, src Source, cache *ModelCache, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	start := time.Now()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	snap, err := LoadSnapshot(ctx, src)
	if err != nil {
		return nil, err
	}
	e.snapshot = snap
	metrics.RecordSnapshot(len(snap.Items), len(snap.Interactions), len(snap.Watchlist))
	e.logger.Info().
		Int("items", len(snap.Items)).
		Int("interactions", len(snap.Interactions)).
		Int("watchlist", len(snap.Watchlist)).
		Int("users", snap.UserCount()).
		Msg("loaded data snapshot")

	var contentSource, collabSource ModelSource
	var rmse float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		e.content, contentSource, err = e.buildContent(gctx, cache)
		return err
	})
	g.Go(func() error {
		var err error
		e.collab, collabSource, rmse, err = e.buildCollaborative(gctx, cache)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ratings := toRatings(snap.Interactions)
	e.popularity = algorithms.NewPopularity(ratings)
	e.coldSample = sampleCatalog(snap.Items, cfg.Seed)

	took := time.Since(start)
	metrics.RecordModelBuild("engine", took)
	e.status = Status{
		Ready:             true,
		Items:             len(snap.Items),
		Interactions:      len(snap.Interactions),
		Watchlist:         len(snap.Watchlist),
		Users:             snap.UserCount(),
		ContentSource:     contentSource,
		Vocabulary:        e.content.Vectorizer.VocabularySize(),
		CollabSource:      collabSource,
		CollabAvailable:   e.collab != nil,
		CollabHoldoutRMSE: rmse,
		BuiltAt:           time.Now(),
		BuildDurationMS:   took.Milliseconds(),
	}

	e.logger.Info().
		Str("content_source", string(contentSource)).
		Str("collaborative_source", string(collabSource)).
		Bool("collaborative_available", e.collab != nil).
		Int64("duration_ms", took.Milliseconds()).
		Msg("recommendation engine ready")

	return e, nil
}

// buildContent returns the content model, from cache when allowed.
func (e *Engine) buildContent(ctx context.Context, cache *ModelCache) (*algorithms.ContentModel, ModelSource, error) {
	items := e.snapshot.Items
	fingerprint := e.snapshot.Fingerprint(ModelContent) ^ e.cfg.modelSalt(ModelContent)

	cached := &algorithms.ContentModel{}
	hit, err := cache.load(ctx, e.cfg.Cache, ModelContent, storage.KeyContentModel, fingerprint, cached, e.logger)
	if err != nil {
		return nil, "", err
	}
	if hit {
		if cached.Vectorizer == nil {
			cached.Vectorizer = algorithms.NewVectorizer(e.cfg.Content)
		}
		if cached.Size() != len(items) {
			e.logger.Warn().
				Int("cached_rows", cached.Size()).
				Int("catalog_rows", len(items)).
				Msg("cached content model does not match the catalog size")
		}
		return cached, SourceCache, nil
	}

	start := time.Now()
	docs := make([]string, len(items))
	for i, item := range items {
		docs[i] = item.ContentText()
	}
	model, err := algorithms.BuildContentModel(ctx, docs, e.cfg.Content, e.cfg.ContentWorkers)
	if err != nil {
		return nil, "", fmt.Errorf("build content model: %w", err)
	}
	took := time.Since(start)
	metrics.RecordModelBuild(string(ModelContent), took)

	e.logger.Info().
		Int("items", len(items)).
		Int("vocabulary", model.Vectorizer.VocabularySize()).
		Int64("duration_ms", took.Milliseconds()).
		Msg("built content model")

	cache.save(ctx, e.cfg.Cache, storage.KeyContentModel, model, fingerprint, len(items), model.BuiltAt, took, e.logger)
	return model, SourceBuilt, nil
}

// buildCollaborative returns the collaborative model, from cache when
// allowed, or nil when there are fewer than MinInteractions ratings.
func (e *Engine) buildCollaborative(ctx context.Context, cache *ModelCache) (*algorithms.SVD, ModelSource, float64, error) {
	interactions := e.snapshot.Interactions
	fingerprint := e.snapshot.Fingerprint(ModelCollaborative) ^ e.cfg.modelSalt(ModelCollaborative)

	cached := &algorithms.SVD{}
	hit, err := cache.load(ctx, e.cfg.Cache, ModelCollaborative, storage.KeyCollabModel, fingerprint, cached, e.logger)
	if err != nil {
		return nil, "", 0, err
	}
	if hit && cached.Fitted() {
		return cached, SourceCache, 0, nil
	}

	if len(interactions) < e.cfg.MinInteractions {
		metrics.CollaborativeInsufficientData.Inc()
		e.logger.Info().
			Int("interactions", len(interactions)).
			Int("min_interactions", e.cfg.MinInteractions).
			Msg("not enough interactions for a collaborative model")
		return nil, SourceNone, 0, nil
	}

	start := time.Now()
	train, test := algorithms.TrainTestSplit(toRatings(interactions), e.cfg.TestFraction, e.cfg.Seed)

	model := algorithms.NewSVD(e.cfg.Collaborative)
	if err := model.Fit(ctx, train); err != nil {
		return nil, "", 0, fmt.Errorf("train collaborative model: %w", err)
	}
	took := time.Since(start)
	metrics.RecordModelBuild(string(ModelCollaborative), took)

	rmse := algorithms.RMSE(model, test)
	if math.IsNaN(rmse) {
		rmse = 0
	} else {
		metrics.CollaborativeHoldoutRMSE.Set(rmse)
	}

	e.logger.Info().
		Int("train", len(train)).
		Int("test", len(test)).
		Float64("holdout_rmse", rmse).
		Int64("duration_ms", took.Milliseconds()).
		Msg("trained collaborative model")

	cache.save(ctx, e.cfg.Cache, storage.KeyCollabModel, model, fingerprint, len(interactions), model.TrainedAt, took, e.logger)
	return model, SourceBuilt, rmse, nil
}

// toRatings converts interactions to algorithm input, preserving order.
func toRatings(interactions []Interaction) []algorithms.Rating {
	ratings := make([]algorithms.Rating, len(interactions))
	for i, in := range interactions {
		ratings[i] = algorithms.Rating{UserID: in.UserID, ItemID: in.ItemID, Value: in.Rating}
	}
	return ratings
}

// sampleCatalog returns catalog ids in a seeded random order. It is the cold
// start answer when nobody has rated anything; the order carries no meaning.
func sampleCatalog(items []Item, seed int64) []int {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // math/rand is fine for recommendation shuffling
	ids := make([]int, len(items))
	for i, p := range rng.Perm(len(items)) {
		ids[i] = items[p].ID
	}
	return ids
}

// Status returns a description of the engine.
func (e *Engine) Status() Status {
	return e.status
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}

// Snapshot returns the data snapshot the engine was built from.
// It must not be modified.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot
}

// PredictRating returns the collaborative estimate for a pair. It never
// fails: without a model or an estimate, Available is false.
func (e *Engine) PredictRating(userID, itemID int) Prediction {
	if e.collab == nil {
		return Prediction{}
	}
	v, ok := e.collab.Predict(userID, itemID)
	if !ok {
		return Prediction{}
	}
	return Prediction{Value: v, Available: true}
}

// SimilarityRow returns the content similarity of itemID to every catalog
// row, in catalog order. The returned slice must not be modified.
func (e *Engine) SimilarityRow(itemID int) ([]float64, bool) {
	row, ok := e.snapshot.ItemRow(itemID)
	if !ok {
		return nil, false
	}
	sims := e.content.Row(row)
	return sims, sims != nil
}
