// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package scorers

import "github.com/sunudeal/reco/internal/recommend"

// Contextual scores a product against the browsing situation. Every
// candidate starts from the configured baseline; affinity with the
// product currently being viewed and with the context's user location
// adds bonuses on top.
type Contextual struct {
	cfg recommend.ContextualConfig
}

// NewContextual creates a contextual scorer.
func NewContextual(cfg recommend.ContextualConfig) *Contextual {
	return &Contextual{cfg: cfg}
}

// Name implements recommend.Scorer.
func (s *Contextual) Name() string { return recommend.ScorerContextual }

// Score implements recommend.Scorer.
func (s *Contextual) Score(p recommend.Product, _ recommend.Profile, rctx recommend.Context) float64 {
	score := s.cfg.Baseline

	if cur := rctx.CurrentProduct; cur != nil {
		if recommend.EqualFold(p.Category, cur.Category) {
			score += s.cfg.SameCategoryBonus
		}
		if p.Brand != "" && recommend.EqualFold(p.Brand, cur.Brand) {
			score += s.cfg.SameBrandBonus
		}
	}
	if p.Location != "" && rctx.UserLocation != "" && recommend.EqualFold(p.Location, rctx.UserLocation) {
		score += s.cfg.LocationBonus
	}

	if score > 1 {
		return 1
	}
	return score
}
