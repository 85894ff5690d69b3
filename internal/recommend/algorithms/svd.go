// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ErrNoRatings is returned when a model is fitted on an empty rating set.
var ErrNoRatings = errors.New("no ratings to train on")

// SVDConfig contains configuration for the SVD algorithm.
type SVDConfig struct {
	// NumFactors is the dimension of the latent factor vectors. Default: 50.
	NumFactors int

	// NumEpochs is the number of SGD passes over the training set. Default: 20.
	NumEpochs int

	// LearningRate is the SGD step size. Default: 0.005.
	LearningRate float64

	// Regularization is the L2 penalty on biases and factors. Default: 0.02.
	Regularization float64

	// InitMean and InitStdDev parameterise the normal factor initialisation.
	InitMean   float64
	InitStdDev float64

	// RatingMin and RatingMax bound predictions. Default: 1 and 5.
	RatingMin float64
	RatingMax float64

	// Seed makes initialisation reproducible. Default: 42.
	Seed int64
}

// DefaultSVDConfig returns default SVD configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		NumFactors:     50,
		NumEpochs:      20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitMean:       0,
		InitStdDev:     0.1,
		RatingMin:      1,
		RatingMax:      5,
		Seed:           42,
	}
}

// SVD implements biased matrix factorization for explicit ratings (Funk SVD).
//
// The estimate for user u and item i is
//
//	r̂(u,i) = μ + b_u + b_i + q_i·p_u
//
// where unknown users or items contribute no bias and no factor term, so any
// pair can be scored. Training minimises squared error plus L2 penalties with
// plain SGD in input order. Fields are exported for gob.
type SVD struct {
	Config      SVDConfig
	GlobalMean  float64
	UserIndex   map[int]int
	ItemIndex   map[int]int
	UserBias    []float64
	ItemBias    []float64
	UserFactors [][]float64
	ItemFactors [][]float64
	NumRatings  int
	TrainedAt   time.Time
}

// NewSVD creates an unfitted model, applying defaults to zero values.
func NewSVD(cfg SVDConfig) *SVD {
	def := DefaultSVDConfig()
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = def.NumFactors
	}
	if cfg.NumEpochs <= 0 {
		cfg.NumEpochs = def.NumEpochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.RatingMax <= cfg.RatingMin {
		cfg.RatingMin, cfg.RatingMax = def.RatingMin, def.RatingMax
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return &SVD{Config: cfg}
}

// Fit trains the model on ratings. The context is checked between epochs.
func (s *SVD) Fit(ctx context.Context, ratings []Rating) error {
	if len(ratings) == 0 {
		return ErrNoRatings
	}
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	s.UserIndex = make(map[int]int)
	s.ItemIndex = make(map[int]int)
	users := make([]int, len(ratings))
	items := make([]int, len(ratings))
	var sum float64
	for k, r := range ratings {
		u, ok := s.UserIndex[r.UserID]
		if !ok {
			u = len(s.UserIndex)
			s.UserIndex[r.UserID] = u
		}
		i, ok := s.ItemIndex[r.ItemID]
		if !ok {
			i = len(s.ItemIndex)
			s.ItemIndex[r.ItemID] = i
		}
		users[k], items[k] = u, i
		sum += r.Value
	}
	s.GlobalMean = sum / float64(len(ratings))
	s.NumRatings = len(ratings)

	f := s.Config.NumFactors
	rng := rand.New(rand.NewSource(s.Config.Seed)) //nolint:gosec // reproducible initialisation, not security
	s.UserBias = make([]float64, len(s.UserIndex))
	s.ItemBias = make([]float64, len(s.ItemIndex))
	s.UserFactors = initFactors(rng, len(s.UserIndex), f, s.Config.InitMean, s.Config.InitStdDev)
	s.ItemFactors = initFactors(rng, len(s.ItemIndex), f, s.Config.InitMean, s.Config.InitStdDev)

	lr, reg := s.Config.LearningRate, s.Config.Regularization
	for epoch := 0; epoch < s.Config.NumEpochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		for k, r := range ratings {
			u, i := users[k], items[k]
			pu, qi := s.UserFactors[u], s.ItemFactors[i]

			err := r.Value - (s.GlobalMean + s.UserBias[u] + s.ItemBias[i] + dot(qi, pu))

			s.UserBias[u] += lr * (err - reg*s.UserBias[u])
			s.ItemBias[i] += lr * (err - reg*s.ItemBias[i])
			for x := 0; x < f; x++ {
				puf, qif := pu[x], qi[x]
				pu[x] += lr * (err*qif - reg*puf)
				qi[x] += lr * (err*puf - reg*qif)
			}
		}
	}

	s.TrainedAt = time.Now()
	return nil
}

func initFactors(rng *rand.Rand, rows, cols int, mean, stddev float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = make([]float64, cols)
		for c := range m[r] {
			m[r][c] = mean + stddev*rng.NormFloat64()
		}
	}
	return m
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Fitted reports whether Fit has completed successfully.
func (s *SVD) Fitted() bool {
	return s != nil && s.UserIndex != nil && s.NumRatings > 0
}

// Predict estimates the rating of itemID by userID, clipped to the rating scale.
// The second result is false when the model is not fitted or the estimate is
// not a finite number; callers decide the fallback.
func (s *SVD) Predict(userID, itemID int) (float64, bool) {
	if !s.Fitted() {
		return 0, false
	}
	est := s.GlobalMean
	u, knownUser := s.UserIndex[userID]
	i, knownItem := s.ItemIndex[itemID]
	if knownUser {
		est += s.UserBias[u]
	}
	if knownItem {
		est += s.ItemBias[i]
	}
	if knownUser && knownItem {
		est += dot(s.ItemFactors[i], s.UserFactors[u])
	}
	if !isFinite(est) {
		return 0, false
	}
	return clamp(est, s.Config.RatingMin, s.Config.RatingMax), true
}

// TrainTestSplit shuffles ratings with seed and holds out ceil(testFraction*n)
// of them, always leaving at least one rating for training.
func TrainTestSplit(ratings []Rating, testFraction float64, seed int64) (train, test []Rating) {
	n := len(ratings)
	if n == 0 {
		return nil, nil
	}
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < 0 {
		nTest = 0
	}
	if nTest > n-1 {
		nTest = n - 1
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split, not security
	perm := rng.Perm(n)
	test = make([]Rating, 0, nTest)
	train = make([]Rating, 0, n-nTest)
	for k, idx := range perm {
		if k < nTest {
			test = append(test, ratings[idx])
		} else {
			train = append(train, ratings[idx])
		}
	}
	return train, test
}

// RMSE returns the root mean squared error of the model on ratings.
// Pairs without an estimate are skipped; with none left the result is NaN.
func RMSE(s *SVD, ratings []Rating) float64 {
	var sum float64
	count := 0
	for _, r := range ratings {
		est, ok := s.Predict(r.UserID, r.ItemID)
		if !ok {
			continue
		}
		d := r.Value - est
		sum += d * d
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(count))
}
