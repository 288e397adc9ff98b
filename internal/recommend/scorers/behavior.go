// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package scorers

import "github.com/sunudeal/reco/internal/recommend"

// Behavior scores a product against the user's observed activity:
// recent search queries, viewed products and location. Each matching
// signal adds its configured bonus; the sum is clamped to 1 by the
// engine.
type Behavior struct {
	cfg      recommend.BehaviorConfig
	matching recommend.MatchingConfig
}

// NewBehavior creates a behavioral scorer.
func NewBehavior(cfg recommend.BehaviorConfig, matching recommend.MatchingConfig) *Behavior {
	return &Behavior{cfg: cfg, matching: matching}
}

// Name implements recommend.Scorer.
func (b *Behavior) Name() string { return recommend.ScorerBehavior }

// Score implements recommend.Scorer.
func (b *Behavior) Score(p recommend.Product, profile recommend.Profile, _ recommend.Context) float64 {
	score := 0.0

	categoryHit := false
	brandHit := false
	for _, search := range profile.Behavior.RecentSearches {
		if !categoryHit && b.matching.Matches(search, p.Category) {
			categoryHit = true
		}
		if !brandHit && p.Brand != "" && b.matching.Matches(search, p.Brand) {
			brandHit = true
		}
		if categoryHit && brandHit {
			break
		}
	}
	if categoryHit {
		score += b.cfg.SearchCategoryBonus
	}
	if brandHit {
		score += b.cfg.SearchBrandBonus
	}

	if p.Location != "" && recommend.EqualFold(p.Location, profile.Behavior.Location) {
		score += b.cfg.LocationBonus
	}

	if recommend.ContainsFold(profile.Behavior.ViewedProducts, p.Category) {
		score += b.cfg.ViewedProductBonus
	}

	if score > 1 {
		return 1
	}
	return score
}
