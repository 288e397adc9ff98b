// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sunudeal/reco/internal/metrics"
	"github.com/sunudeal/reco/internal/models"
	"github.com/sunudeal/reco/internal/store"
)

// UserInsights handles GET /api/v1/insights/{userID}.
func (h *Handler) UserInsights(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "userID is required", nil)
		return
	}

	ins, err := h.analyzer.ForUser(r.Context(), userID)
	metrics.RecordInsightsQuery(time.Since(start), err)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, models.ErrCodeStorageUnavailable, "Interaction storage unavailable", err)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to generate insights", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   ins,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			LatencyMS: time.Since(start).Milliseconds(),
		},
	})
}
