// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package recommend

import "fmt"

// Reason strings shown to the user alongside each recommendation. Kept
// as constants so the frontend can key translations off them.
const (
	reasonExcellentMatch = "Excellent match for your profile"
	reasonHighlyRated    = "Highly rated by users"
	reasonFallback       = "Recommended by our AI"
)

// classify assigns the recommendation type for a scored product. The
// checks run in priority order: similar and complementary require a
// current product in context, popular requires strong social proof,
// and personalized is the catch-all.
func classify(p Product, rctx Context, cfg *Config) RecommendationType {
	if cur := rctx.CurrentProduct; cur != nil {
		if EqualFold(p.Category, cur.Category) {
			return TypeSimilar
		}
		return TypeComplementary
	}
	if p.Rating >= cfg.Ranking.PopularMinRating && p.Reviews > cfg.Ranking.PopularMinReviews {
		return TypePopular
	}
	return TypePersonalized
}

// buildReasons produces the human-readable explanations for a
// recommendation. Each condition is evaluated independently and the
// reasons are emitted in a fixed order; when nothing applies a single
// fallback reason is returned so the list is never empty.
func buildReasons(p Product, total float64, profile Profile, rctx Context, cfg *Config) []string {
	var reasons []string
	if total > cfg.Ranking.ExcellentScore {
		reasons = append(reasons, reasonExcellentMatch)
	}
	if p.Brand != "" && ContainsFold(profile.Preferences.Brands, p.Brand) {
		reasons = append(reasons, fmt.Sprintf("From %s, one of your preferred brands", p.Brand))
	}
	if p.Rating >= cfg.Ranking.PopularMinRating {
		reasons = append(reasons, reasonHighlyRated)
	}
	if cur := rctx.CurrentProduct; cur != nil && EqualFold(p.Category, cur.Category) {
		reasons = append(reasons, fmt.Sprintf("Similar to the %s offer you are viewing", cur.Category))
	}
	if p.Location != "" && EqualFold(p.Location, profile.Behavior.Location) {
		reasons = append(reasons, fmt.Sprintf("Available in %s", p.Location))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, reasonFallback)
	}
	return reasons
}
