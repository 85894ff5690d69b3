// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

const (
	defaultRefreshReason = "api"
	maxRefreshBodyBytes  = 4 << 10
)

// GetRecommendations handles GET /api/v1/users/{userID}/recommendations.
//
// Query parameters: n (default RECOMMEND_DEFAULT_N, at most RECOMMEND_MAX_N)
// and exclude_watchlist (default false). Unknown users receive the popularity
// fallback; only storage failures produce an error.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_USER_ID", "User ID must be an integer", nil)
		return
	}
	n, err := getIntParam(r, "n", h.limits.DefaultN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	exclude, err := getBoolParam(r, "exclude_watchlist", false)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	req := validation.RecommendationsRequest{
		UserID:           userID,
		N:                n,
		ExcludeWatchlist: exclude,
		MaxN:             h.limits.MaxN,
	}
	if !validateRequest(w, r, &req) {
		return
	}

	key := fmt.Sprintf("rec:%d:%d:%t", req.UserID, req.N, req.ExcludeWatchlist)
	items, err := h.cachedList("recommendations", key, func() ([]int, error) {
		return h.recommender.Recommend(r.Context(), req.UserID, req.N, recommend.Options{
			ExcludeWatchlisted: req.ExcludeWatchlist,
		})
	})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.RecommendationsResponse{
		UserID:           req.UserID,
		Items:            items,
		Count:            len(items),
		ExcludeWatchlist: req.ExcludeWatchlist,
	}, start)
}

// GetSimilarItems handles GET /api/v1/items/{itemID}/similar.
//
// Query parameter: k (default RECOMMEND_DEFAULT_K, at most RECOMMEND_MAX_K).
func (h *Handler) GetSimilarItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_ITEM_ID", "Item ID must be an integer", nil)
		return
	}
	k, err := getIntParam(r, "k", h.limits.DefaultK)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	req := validation.SimilarItemsRequest{ItemID: itemID, K: k, MaxK: h.limits.MaxK}
	if !validateRequest(w, r, &req) {
		return
	}

	key := fmt.Sprintf("sim:%d:%d", req.ItemID, req.K)
	items, err := h.cachedList("similar", key, func() ([]int, error) {
		return h.recommender.SimilarItems(r.Context(), req.ItemID, req.K)
	})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.SimilarItemsResponse{
		ItemID: req.ItemID,
		Items:  items,
		Count:  len(items),
	}, start)
}

// RefreshRecommendations handles POST /api/v1/recommendations/refresh.
//
// The optional JSON body {"reason": "..."} is recorded with the event. The
// refresh is asynchronous: the response is 202 Accepted once the request is
// queued.
func (h *Handler) RefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req validation.RefreshRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRefreshBodyBytes))
	if err != nil {
		respondError(w, r, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Request body too large", nil)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Request body must be a JSON object", nil)
			return
		}
	}
	if !validateRequest(w, r, &req) {
		return
	}
	if req.Reason == "" {
		req.Reason = defaultRefreshReason
	}

	if h.publisher != nil {
		eventID, err := h.publisher.PublishRefresh(r.Context(), req.Reason)
		if err != nil {
			respondError(w, r, http.StatusServiceUnavailable, "EVENT_BUS_UNAVAILABLE", "Refresh could not be queued", err)
			return
		}
		respondSuccess(w, r, http.StatusAccepted, models.RefreshAccepted{
			EventID: eventID,
			Reason:  req.Reason,
			Mode:    "event",
		}, start)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	h.background(func() {
		if err := h.recommender.Refresh(ctx, recommend.TriggerManual); err != nil {
			logger := logging.Ctx(ctx)
			logger.Warn().Err(err).Str("reason", req.Reason).Msg("Manual refresh failed")
		}
	})
	respondSuccess(w, r, http.StatusAccepted, models.RefreshAccepted{
		Reason: req.Reason,
		Mode:   "direct",
	}, start)
}

// RecommendationStatus handles GET /api/v1/recommendations/status.
func (h *Handler) RecommendationStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.recommender.Status(), time.Now())
}

// respondEngineError maps engine errors to HTTP responses.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrStorageUnavailable), errors.Is(err, recommend.ErrCorruptArtifact):
		respondError(w, r, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Recommendation data is temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "Recommendation request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
	}
}
