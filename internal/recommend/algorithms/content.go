// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ContentModel holds TF-IDF document vectors and the full item-by-item cosine
// similarity matrix. Row and column i correspond to document i of the corpus
// the model was built from. Fields are exported for gob.
type ContentModel struct {
	Vectorizer *Vectorizer
	Vectors    []SparseVector
	Matrix     [][]float64
	BuiltAt    time.Time
}

// BuildContentModel vectorizes docs and computes the pairwise cosine matrix.
// The matrix is symmetric with an exact 1.0 diagonal. Rows are computed by up
// to workers goroutines (0 = runtime.NumCPU()). An empty corpus returns an
// empty model.
func BuildContentModel(ctx context.Context, docs []string, cfg TFIDFConfig, workers int) (*ContentModel, error) {
	model := &ContentModel{
		Vectorizer: NewVectorizer(cfg),
		BuiltAt:    time.Now(),
	}
	if len(docs) == 0 {
		return model, nil
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	model.Vectors = model.Vectorizer.FitTransform(docs)

	n := len(docs)
	model.Matrix = make([][]float64, n)
	for i := range model.Matrix {
		model.Matrix[i] = make([]float64, n)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if ContextCancelled(gctx) {
				return gctx.Err()
			}
			// Row i owns cells (i, j) and (j, i) for j >= i.
			model.Matrix[i][i] = 1.0
			for j := i + 1; j < n; j++ {
				sim := clamp(model.Vectors[i].Dot(model.Vectors[j]), -1, 1)
				model.Matrix[i][j] = sim
				model.Matrix[j][i] = sim
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return model, nil
}

// Size returns the number of documents in the model.
func (m *ContentModel) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Matrix)
}

// Similarity returns the cosine similarity of rows i and j, or 0 when either is out of range.
func (m *ContentModel) Similarity(i, j int) float64 {
	n := m.Size()
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0
	}
	return m.Matrix[i][j]
}

// Row returns row i of the similarity matrix, or nil when out of range.
// The returned slice must not be modified.
func (m *ContentModel) Row(i int) []float64 {
	if i < 0 || i >= m.Size() {
		return nil
	}
	return m.Matrix[i]
}

// MeanSimilarity returns the mean similarity between row i and the given rows.
// Out-of-range rows are skipped; with nothing left the result is 0.
func (m *ContentModel) MeanSimilarity(i int, rows []int) float64 {
	n := m.Size()
	if i < 0 || i >= n {
		return 0
	}
	var sum float64
	count := 0
	for _, r := range rows {
		if r < 0 || r >= n {
			continue
		}
		sum += m.Matrix[i][r]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
