// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms implements the models behind the hybrid recommender.
//
// The package works on plain inputs (documents and rating triples) and knows
// nothing about catalogs or snapshots; the recommend package adapts its data
// before calling in.
//
//   - Vectorizer: TF-IDF with stop-word removal, n-grams and a vocabulary cap
//   - ContentModel: l2-normalised TF-IDF vectors plus the dense cosine matrix
//   - SVD: biased matrix factorization trained by SGD (Funk SVD)
//   - Popularity: count times mean rating ranking for cold-start users
//
// # Thread Safety
//
// Models are built once and are read-only afterwards; concurrent reads of a
// built model need no locking. Builders accept a context and stop between
// units of work when it is cancelled.
package algorithms
