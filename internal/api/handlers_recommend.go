// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sunudeal/reco/internal/metrics"
	"github.com/sunudeal/reco/internal/models"
	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/recommend/scorers"
)

// RecommendationsRequest is the POST /api/v1/recommendations body.
type RecommendationsRequest struct {
	Profile    recommend.Profile   `json:"profile"`
	Context    recommend.Context   `json:"context"`
	Candidates []recommend.Product `json:"candidates" validate:"required,min=1,dive"`
	Limit      int                 `json:"limit" validate:"omitempty,gte=-1,lte=50"`
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendationsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Malformed request body", err)
		return
	}
	if req.Profile.ID == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "profile.id is required", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Profile:    req.Profile,
		Context:    req.Context,
		Candidates: req.Candidates,
		Limit:      req.Limit,
		RequestID:  chimiddleware.GetReqID(r.Context()),
	})
	metrics.RecordRecommendation(time.Since(start), countRecs(resp), resp != nil && resp.Metadata.CacheHit, err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to generate recommendations", err)
		return
	}
	for _, rec := range resp.Recommendations {
		metrics.RecommendationsByType.WithLabelValues(string(rec.Type)).Inc()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			LatencyMS: resp.Metadata.LatencyMS,
			Cached:    resp.Metadata.CacheHit,
			RequestID: resp.Metadata.RequestID,
		},
	})
}

func countRecs(resp *recommend.Response) int {
	if resp == nil {
		return 0
	}
	return len(resp.Recommendations)
}

// GetEngineConfig handles GET /api/v1/recommendations/config.
func (h *Handler) GetEngineConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.Config(),
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// UpdateEngineConfig handles PUT /api/v1/recommendations/config. The
// body is a full engine configuration; partial updates are not
// supported, clients should GET, modify and PUT back.
func (h *Handler) UpdateEngineConfig(w http.ResponseWriter, r *http.Request) {
	var cfg recommend.Config
	if err := decodeJSONBody(r, &cfg); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Malformed request body", err)
		return
	}

	if err := h.engine.UpdateConfig(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	// Scorers carry copies of their config sections; rebuild them so
	// tuning parameters take effect.
	h.engine.SetScorers(scorers.Default(&cfg))

	h.logger.Info().Msg("Engine configuration replaced via API")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.Config(),
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
