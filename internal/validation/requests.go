// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RecommendationsRequest holds the query for GET /users/{userID}/recommendations.
// MaxN is the configured ceiling for N; zero disables the ceiling.
type RecommendationsRequest struct {
	UserID           int  `json:"user_id"`
	N                int  `json:"n" validate:"gte=0"`
	ExcludeWatchlist bool `json:"exclude_watchlist"`
	MaxN             int  `json:"-" validate:"-"`
}

// SimilarItemsRequest holds the query for GET /items/{itemID}/similar.
type SimilarItemsRequest struct {
	ItemID int `json:"item_id"`
	K      int `json:"k" validate:"gte=0"`
	MaxK   int `json:"-" validate:"-"`
}

// RefreshRequest is the optional body of POST /recommendations/refresh.
type RefreshRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=64,printascii"`
}

func registerRequestValidators(v *validator.Validate) {
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req, _ := sl.Current().Interface().(RecommendationsRequest)
		if req.MaxN > 0 && req.N > req.MaxN {
			sl.ReportError(req.N, "n", "N", "lte", strconv.Itoa(req.MaxN))
		}
	}, RecommendationsRequest{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req, _ := sl.Current().Interface().(SimilarItemsRequest)
		if req.MaxK > 0 && req.K > req.MaxK {
			sl.ReportError(req.K, "k", "K", "lte", strconv.Itoa(req.MaxK))
		}
	}, SimilarItemsRequest{})
}
