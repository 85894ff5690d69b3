// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive handles GET /api/v1/health/live. It reports the process is up
// and never touches the engine.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)
	respondSuccess(w, r, http.StatusOK, models.HealthResponse{
		Status:        "alive",
		Version:       h.version,
		Ready:         h.recommender.Ready(),
		UptimeSeconds: uptime,
	}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready: 200 once an engine has been
// built, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.recommender.Ready()
	status, label := http.StatusOK, "ready"
	if !ready {
		status, label = http.StatusServiceUnavailable, "not_ready"
	}
	respondSuccess(w, r, status, models.HealthResponse{
		Status:        label,
		Version:       h.version,
		Ready:         ready,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}, time.Now())
}
