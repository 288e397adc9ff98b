// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunudeal/reco/internal/insights"
	"github.com/sunudeal/reco/internal/models"
	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/store"
)

// Handler bundles the service dependencies behind the HTTP endpoints.
type Handler struct {
	engine   *recommend.Engine
	store    store.Store
	analyzer *insights.Analyzer
	logger   zerolog.Logger
	started  time.Time
	version  string
}

// NewHandler creates the endpoint handler set.
func NewHandler(engine *recommend.Engine, s store.Store, analyzer *insights.Analyzer, logger zerolog.Logger, version string) *Handler {
	return &Handler{
		engine:   engine,
		store:    s,
		analyzer: analyzer,
		logger:   logger.With().Str("component", "api").Logger(),
		started:  time.Now(),
		version:  version,
	}
}

// HealthLive reports process liveness. It always succeeds while the
// process can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status": "alive",
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady reports readiness: the interaction store must be
// reachable and the engine must have scorers registered.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"store":  "ok",
		"engine": "ok",
	}
	healthy := true

	if _, err := h.store.Len(r.Context()); err != nil {
		checks["store"] = "unavailable"
		healthy = false
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         overall,
			"checks":         checks,
			"version":        h.version,
			"uptime_seconds": int64(time.Since(h.started).Seconds()),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
