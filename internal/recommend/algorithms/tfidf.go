// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"math"
	"sort"
)

// TFIDFConfig contains configuration for the TF-IDF vectorizer.
type TFIDFConfig struct {
	// MaxFeatures caps the vocabulary to the most frequent terms across the corpus.
	// Default: 5000.
	MaxFeatures int

	// MinNGram and MaxNGram bound the n-gram sizes. Default: 1 and 2.
	MinNGram int
	MaxNGram int

	// StopWords removes English stop words before n-grams are formed.
	StopWords bool
}

// DefaultTFIDFConfig returns the default vectorizer configuration.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxFeatures: 5000,
		MinNGram:    1,
		MaxNGram:    2,
		StopWords:   true,
	}
}

// Vectorizer is a fitted TF-IDF vectorizer. Fields are exported for gob.
//
// Weights are raw term counts times a smoothed inverse document frequency
// idf(t) = ln((1+n)/(1+df(t))) + 1, and every document vector is l2-normalised.
type Vectorizer struct {
	Config     TFIDFConfig
	Vocabulary map[string]int
	IDF        []float64
}

// NewVectorizer creates an unfitted vectorizer, applying defaults to zero values.
func NewVectorizer(cfg TFIDFConfig) *Vectorizer {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 5000
	}
	if cfg.MinNGram <= 0 {
		cfg.MinNGram = 1
	}
	if cfg.MaxNGram < cfg.MinNGram {
		cfg.MaxNGram = cfg.MinNGram
	}
	return &Vectorizer{Config: cfg, Vocabulary: map[string]int{}}
}

// analyze turns one document into its term list.
func (v *Vectorizer) analyze(doc string) []string {
	tokens := Tokenize(doc)
	if v.Config.StopWords {
		kept := tokens[:0]
		for _, t := range tokens {
			if !IsStopWord(t) {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}
	return NGrams(tokens, v.Config.MinNGram, v.Config.MaxNGram)
}

// FitTransform learns the vocabulary and idf weights from docs and returns
// one l2-normalised vector per document, in input order. An empty corpus or a
// corpus without usable terms yields an empty vocabulary and zero vectors.
func (v *Vectorizer) FitTransform(docs []string) []SparseVector {
	analyzed := make([][]string, len(docs))
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		terms := v.analyze(doc)
		analyzed[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	if len(terms) > v.Config.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.Config.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([]SparseVector, len(docs))
	for i, doc := range analyzed {
		vectors[i] = v.vectorize(doc)
	}
	return vectors
}

// Transform vectorizes documents with the fitted vocabulary. Unknown terms are ignored.
func (v *Vectorizer) Transform(docs []string) []SparseVector {
	vectors := make([]SparseVector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.vectorize(v.analyze(doc))
	}
	return vectors
}

// VocabularySize returns the number of terms kept after fitting.
func (v *Vectorizer) VocabularySize() int {
	return len(v.Vocabulary)
}

func (v *Vectorizer) vectorize(terms []string) SparseVector {
	counts := make(map[int]float64)
	for _, t := range terms {
		if idx, ok := v.Vocabulary[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, counts[idx]*v.IDF[idx])
	}

	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
