// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"math"
	"testing"
)

func TestVectorizer_FitTransform(t *testing.T) {
	docs := []string{
		"space heist crew",
		"space station crew",
		"romantic comedy",
	}

	v := NewVectorizer(TFIDFConfig{MaxFeatures: 100, MinNGram: 1, MaxNGram: 1, StopWords: true})
	vectors := v.FitTransform(docs)

	if len(vectors) != len(docs) {
		t.Fatalf("len(vectors) = %d, want %d", len(vectors), len(docs))
	}
	// space, heist, crew, station, romantic, comedy
	if v.VocabularySize() != 6 {
		t.Errorf("VocabularySize() = %d, want 6", v.VocabularySize())
	}

	// Vocabulary indices are assigned in alphabetical order.
	if v.Vocabulary["comedy"] != 0 || v.Vocabulary["station"] != 5 {
		t.Errorf("unexpected vocabulary order: %v", v.Vocabulary)
	}

	// idf(space) = ln(4/3)+1, idf(heist) = ln(4/2)+1
	wantSpace := math.Log(4.0/3.0) + 1
	if got := v.IDF[v.Vocabulary["space"]]; math.Abs(got-wantSpace) > 1e-12 {
		t.Errorf("idf(space) = %f, want %f", got, wantSpace)
	}
	wantHeist := math.Log(2) + 1
	if got := v.IDF[v.Vocabulary["heist"]]; math.Abs(got-wantHeist) > 1e-12 {
		t.Errorf("idf(heist) = %f, want %f", got, wantHeist)
	}

	for i, vec := range vectors {
		if norm := vec.Norm(); math.Abs(norm-1) > 1e-9 {
			t.Errorf("vector %d norm = %f, want 1", i, norm)
		}
	}
}

func TestVectorizer_StopWordsAndBigrams(t *testing.T) {
	v := NewVectorizer(DefaultTFIDFConfig())
	v.FitTransform([]string{"the heist of the century"})

	for _, term := range []string{"heist", "century", "heist century"} {
		if _, ok := v.Vocabulary[term]; !ok {
			t.Errorf("vocabulary missing %q", term)
		}
	}
	for _, term := range []string{"the", "of", "the heist"} {
		if _, ok := v.Vocabulary[term]; ok {
			t.Errorf("vocabulary contains stop-word term %q", term)
		}
	}
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	docs := []string{
		"alpha alpha alpha beta beta gamma",
		"alpha beta delta",
	}
	v := NewVectorizer(TFIDFConfig{MaxFeatures: 2, MinNGram: 1, MaxNGram: 1})
	v.FitTransform(docs)

	if v.VocabularySize() != 2 {
		t.Fatalf("VocabularySize() = %d, want 2", v.VocabularySize())
	}
	for _, term := range []string{"alpha", "beta"} {
		if _, ok := v.Vocabulary[term]; !ok {
			t.Errorf("vocabulary missing most frequent term %q", term)
		}
	}
}

func TestVectorizer_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		docs []string
	}{
		{"no documents", nil},
		{"only stop words", []string{"the and of", "a an"}},
		{"empty strings", []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVectorizer(DefaultTFIDFConfig())
			vectors := v.FitTransform(tt.docs)
			if len(vectors) != len(tt.docs) {
				t.Fatalf("len(vectors) = %d, want %d", len(vectors), len(tt.docs))
			}
			for i, vec := range vectors {
				if vec.Len() != 0 {
					t.Errorf("vector %d has %d entries, want 0", i, vec.Len())
				}
			}
		})
	}
}

func TestVectorizer_Transform(t *testing.T) {
	v := NewVectorizer(DefaultTFIDFConfig())
	v.FitTransform([]string{"space heist", "romantic comedy"})

	got := v.Transform([]string{"space opera", "unseen words"})
	if got[0].Len() != 1 {
		t.Errorf("known-term vector has %d entries, want 1", got[0].Len())
	}
	if got[1].Len() != 0 {
		t.Errorf("unknown-term vector has %d entries, want 0", got[1].Len())
	}
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 1, 2}}

	if got := a.Dot(b); got != 14 {
		t.Errorf("Dot() = %f, want 14", got)
	}
	if got := a.Dot(SparseVector{}); got != 0 {
		t.Errorf("Dot(empty) = %f, want 0", got)
	}
}
