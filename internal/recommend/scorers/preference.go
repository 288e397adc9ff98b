// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package scorers

import "github.com/sunudeal/reco/internal/recommend"

// Preference scores a product against the user's declared tastes:
// budget bracket, preferred brands and preferred categories. A user
// with no declared preferences scores every product 0 here; the other
// scorers carry the ranking in that case.
type Preference struct {
	cfg recommend.PreferenceConfig
}

// NewPreference creates a preference scorer.
func NewPreference(cfg recommend.PreferenceConfig) *Preference {
	return &Preference{cfg: cfg}
}

// Name implements recommend.Scorer.
func (s *Preference) Name() string { return recommend.ScorerPreference }

// Score implements recommend.Scorer.
func (s *Preference) Score(p recommend.Product, profile recommend.Profile, _ recommend.Context) float64 {
	score := 0.0
	prefs := profile.Preferences

	if prefs.Budget != "" && prefs.Budget.Valid() && s.cfg.BudgetFor(p.Price) == prefs.Budget {
		score += s.cfg.BudgetBonus
	}
	if p.Brand != "" && recommend.ContainsFold(prefs.Brands, p.Brand) {
		score += s.cfg.BrandBonus
	}
	if recommend.ContainsFold(prefs.Categories, p.Category) {
		score += s.cfg.CategoryBonus
	}

	if score > 1 {
		return 1
	}
	return score
}
