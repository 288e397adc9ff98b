// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package scorers

import "github.com/sunudeal/reco/internal/recommend"

// Popularity scores a product on social proof alone: the normalized
// rating weighted against the review volume, with the review term
// saturating at the configured count so a few thousand reviews do not
// drown out the rating.
type Popularity struct {
	cfg recommend.PopularityConfig
}

// NewPopularity creates a popularity scorer.
func NewPopularity(cfg recommend.PopularityConfig) *Popularity {
	return &Popularity{cfg: cfg}
}

// Name implements recommend.Scorer.
func (s *Popularity) Name() string { return recommend.ScorerPopularity }

// Score implements recommend.Scorer.
func (s *Popularity) Score(p recommend.Product, _ recommend.Profile, _ recommend.Context) float64 {
	rating := p.Rating / s.cfg.MaxRating
	if rating > 1 {
		rating = 1
	}
	if rating < 0 {
		rating = 0
	}

	reviews := float64(p.Reviews) / float64(s.cfg.ReviewSaturation)
	if reviews > 1 {
		reviews = 1
	}
	if reviews < 0 {
		reviews = 0
	}

	return s.cfg.RatingWeight*rating + s.cfg.ReviewWeight*reviews
}
