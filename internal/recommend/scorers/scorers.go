// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package scorers

import "github.com/sunudeal/reco/internal/recommend"

// Default builds the standard scorer ensemble from an engine
// configuration: behavior, preference, popularity and contextual, in
// that order.
func Default(cfg *recommend.Config) []recommend.Scorer {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	return []recommend.Scorer{
		NewBehavior(cfg.Behavior, cfg.Matching),
		NewPreference(cfg.Preference),
		NewPopularity(cfg.Popularity),
		NewContextual(cfg.Contextual),
	}
}
