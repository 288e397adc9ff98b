// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/sunudeal/reco/internal/metrics"
	"github.com/sunudeal/reco/internal/models"
	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/store"
)

// InteractionRequest is the POST /api/v1/interactions body. Category,
// Brand and Price are denormalized product attributes recorded
// alongside the event so insights need no catalog lookup.
type InteractionRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	ProductID string    `json:"product_id" validate:"required"`
	Type      string    `json:"type" validate:"required,interaction_type"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price" validate:"gte=0"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordInteraction handles POST /api/v1/interactions.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.InteractionErrors.WithLabelValues("validation").Inc()
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}

	in := recommend.Interaction{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Type:      recommend.InteractionType(req.Type),
		Category:  req.Category,
		Brand:     req.Brand,
		Price:     req.Price,
		Timestamp: req.Timestamp,
	}

	err := h.store.Append(r.Context(), in)
	metrics.RecordInteraction(req.Type, err)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidInteraction):
			metrics.InteractionErrors.WithLabelValues("validation").Inc()
			respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid interaction", err)
		case errors.Is(err, store.ErrUnavailable):
			metrics.InteractionErrors.WithLabelValues("storage").Inc()
			respondError(w, http.StatusServiceUnavailable, models.ErrCodeStorageUnavailable, "Interaction storage unavailable", err)
		default:
			metrics.InteractionErrors.WithLabelValues("storage").Inc()
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to record interaction", err)
		}
		return
	}

	total, err := h.store.Len(r.Context())
	if err != nil {
		// The write succeeded; report it even if the count is stale.
		total = -1
	} else {
		metrics.StoreSize.Set(float64(total))
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"recorded": true,
			"total":    total,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
