// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// Scorer names. Weights.ToMap keys and Recommendation.Scores keys use
// these; registered scorers must report one of them from Name.
const (
	ScorerBehavior   = "behavior"
	ScorerPreference = "preference"
	ScorerPopularity = "popularity"
	ScorerContextual = "contextual"
)

// Matching modes for free-text search matching, see MatchingConfig.
const (
	MatchSubstring = "substring"
	MatchToken     = "token"
)

// Weights controls how much each scorer contributes to the total.
// Weights are normalized before use, so only their ratios matter.
type Weights struct {
	Behavior   float64 `koanf:"behavior" json:"behavior" validate:"gte=0"`
	Preference float64 `koanf:"preference" json:"preference" validate:"gte=0"`
	Popularity float64 `koanf:"popularity" json:"popularity" validate:"gte=0"`
	Contextual float64 `koanf:"contextual" json:"contextual" validate:"gte=0"`
}

// Normalize returns a copy of the weights scaled to sum to 1. If all
// weights are zero the defaults are returned instead.
func (w Weights) Normalize() Weights {
	sum := w.Behavior + w.Preference + w.Popularity + w.Contextual
	if sum <= 0 {
		return DefaultConfig().Weights
	}
	return Weights{
		Behavior:   w.Behavior / sum,
		Preference: w.Preference / sum,
		Popularity: w.Popularity / sum,
		Contextual: w.Contextual / sum,
	}
}

// ToMap returns the weights keyed by scorer name.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		ScorerBehavior:   w.Behavior,
		ScorerPreference: w.Preference,
		ScorerPopularity: w.Popularity,
		ScorerContextual: w.Contextual,
	}
}

// BehaviorConfig tunes the behavioral scorer. Each bonus is added when
// the corresponding signal matches; the sum is clamped to 1.
type BehaviorConfig struct {
	// SearchCategoryBonus is added when a recent search mentions the
	// product's category. Default: 0.3.
	SearchCategoryBonus float64 `koanf:"search_category_bonus" json:"search_category_bonus" validate:"gte=0,lte=1"`
	// SearchBrandBonus is added when a recent search mentions the
	// product's brand. Default: 0.2.
	SearchBrandBonus float64 `koanf:"search_brand_bonus" json:"search_brand_bonus" validate:"gte=0,lte=1"`
	// LocationBonus is added when the product's location matches the
	// profile location. Default: 0.2.
	LocationBonus float64 `koanf:"location_bonus" json:"location_bonus" validate:"gte=0,lte=1"`
	// ViewedProductBonus is added when the product's category appears in
	// the user's viewed-products markers. Default: 0.3.
	ViewedProductBonus float64 `koanf:"viewed_product_bonus" json:"viewed_product_bonus" validate:"gte=0,lte=1"`
}

// PreferenceConfig tunes the declared-preference scorer.
type PreferenceConfig struct {
	// BudgetBonus is added when the product's price falls in the user's
	// budget bracket. Default: 0.4.
	BudgetBonus float64 `koanf:"budget_bonus" json:"budget_bonus" validate:"gte=0,lte=1"`
	// BrandBonus is added when the product's brand is a preferred
	// brand. Default: 0.3.
	BrandBonus float64 `koanf:"brand_bonus" json:"brand_bonus" validate:"gte=0,lte=1"`
	// CategoryBonus is added when the product's category is a preferred
	// category. Default: 0.3.
	CategoryBonus float64 `koanf:"category_bonus" json:"category_bonus" validate:"gte=0,lte=1"`
	// BudgetLowMax is the exclusive upper price bound of the "low"
	// bracket. Default: 500.
	BudgetLowMax float64 `koanf:"budget_low_max" json:"budget_low_max" validate:"gt=0"`
	// BudgetMediumMax is the inclusive upper price bound of the
	// "medium" bracket; prices above it are "high". Default: 2000.
	BudgetMediumMax float64 `koanf:"budget_medium_max" json:"budget_medium_max" validate:"gt=0"`
}

// PopularityConfig tunes the popularity scorer:
// rating_weight*(rating/max_rating) + review_weight*min(reviews/review_saturation, 1).
type PopularityConfig struct {
	// RatingWeight scales the normalized rating term. Default: 0.6.
	RatingWeight float64 `koanf:"rating_weight" json:"rating_weight" validate:"gte=0,lte=1"`
	// ReviewWeight scales the saturated review-count term. Default: 0.4.
	ReviewWeight float64 `koanf:"review_weight" json:"review_weight" validate:"gte=0,lte=1"`
	// MaxRating is the rating scale ceiling. Default: 5.
	MaxRating float64 `koanf:"max_rating" json:"max_rating" validate:"gt=0"`
	// ReviewSaturation is the review count at which the review term
	// reaches its maximum. Default: 100.
	ReviewSaturation int `koanf:"review_saturation" json:"review_saturation" validate:"gt=0"`
}

// ContextualConfig tunes the browsing-context scorer.
type ContextualConfig struct {
	// Baseline is awarded to every candidate regardless of context.
	// Default: 0.5.
	Baseline float64 `koanf:"baseline" json:"baseline" validate:"gte=0,lte=1"`
	// SameCategoryBonus is added when the candidate shares a category
	// with the product currently being viewed. Default: 0.3.
	SameCategoryBonus float64 `koanf:"same_category_bonus" json:"same_category_bonus" validate:"gte=0,lte=1"`
	// SameBrandBonus is added when the candidate shares a brand with
	// the product currently being viewed. Default: 0.2.
	SameBrandBonus float64 `koanf:"same_brand_bonus" json:"same_brand_bonus" validate:"gte=0,lte=1"`
	// LocationBonus is added when the candidate's location matches the
	// context's user location. Default: 0.2.
	LocationBonus float64 `koanf:"location_bonus" json:"location_bonus" validate:"gte=0,lte=1"`
}

// RankingConfig controls filtering, confidence and classification of
// the scored candidates.
type RankingConfig struct {
	// MinScore is the strict lower bound on the weighted total; a
	// candidate scoring exactly MinScore is discarded. Default: 0.3.
	MinScore float64 `koanf:"min_score" json:"min_score" validate:"gte=0,lte=1"`
	// ConfidenceBoost multiplies the total score to produce the
	// confidence value, capped at 1. Default: 1.2.
	ConfidenceBoost float64 `koanf:"confidence_boost" json:"confidence_boost" validate:"gte=1"`
	// ExcellentScore is the total above which the "excellent match"
	// reason is emitted. Default: 0.8.
	ExcellentScore float64 `koanf:"excellent_score" json:"excellent_score" validate:"gte=0,lte=1"`
	// PopularMinRating and PopularMinReviews gate the "popular"
	// recommendation type and the "highly rated" reason.
	// Defaults: 4.5 and 50.
	PopularMinRating  float64 `koanf:"popular_min_rating" json:"popular_min_rating" validate:"gte=0,lte=5"`
	PopularMinReviews int     `koanf:"popular_min_reviews" json:"popular_min_reviews" validate:"gte=0"`
}

// MatchingConfig controls how search queries are matched against
// product attributes.
//
// In substring mode "car" matches a search for "carpet cleaning",
// which over-credits short category names. Token mode splits the
// search on whitespace and requires a whole-token match, trading some
// recall on compound queries for precision. Default: substring.
type MatchingConfig struct {
	Mode string `koanf:"mode" json:"mode" validate:"oneof=substring token"`
}

// Matches reports whether term occurs in text under the configured
// mode. Both sides are compared case-insensitively; an empty term
// never matches.
func (m MatchingConfig) Matches(text, term string) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return false
	}
	text = strings.ToLower(text)
	if m.Mode == MatchToken {
		for _, tok := range strings.Fields(text) {
			if tok == term {
				return true
			}
		}
		return false
	}
	return strings.Contains(text, term)
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultLimit is used when a request does not specify a limit.
	// Default: 6.
	DefaultLimit int `koanf:"default_limit" json:"default_limit" validate:"gt=0"`
	// MaxLimit caps the per-request limit. Default: 50.
	MaxLimit int `koanf:"max_limit" json:"max_limit" validate:"gt=0"`
}

// CacheConfig controls the in-process response cache.
type CacheConfig struct {
	// Enabled toggles response caching. Default: true.
	Enabled bool `koanf:"enabled" json:"enabled"`
	// TTL is how long a cached response stays valid. Default: 5m.
	TTL time.Duration `koanf:"ttl" json:"ttl" validate:"gt=0"`
	// MaxEntries bounds the cache size; the oldest entries are evicted
	// past it. Default: 1000.
	MaxEntries int `koanf:"max_entries" json:"max_entries" validate:"gt=0"`
}

// Config is the complete engine configuration.
type Config struct {
	Weights    Weights          `koanf:"weights" json:"weights"`
	Behavior   BehaviorConfig   `koanf:"behavior" json:"behavior"`
	Preference PreferenceConfig `koanf:"preference" json:"preference"`
	Popularity PopularityConfig `koanf:"popularity" json:"popularity"`
	Contextual ContextualConfig `koanf:"contextual" json:"contextual"`
	Ranking    RankingConfig    `koanf:"ranking" json:"ranking"`
	Matching   MatchingConfig   `koanf:"matching" json:"matching"`
	Limits     LimitsConfig     `koanf:"limits" json:"limits"`
	Cache      CacheConfig      `koanf:"cache" json:"cache"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Behavior:   0.4,
			Preference: 0.3,
			Popularity: 0.2,
			Contextual: 0.1,
		},
		Behavior: BehaviorConfig{
			SearchCategoryBonus: 0.3,
			SearchBrandBonus:    0.2,
			LocationBonus:       0.2,
			ViewedProductBonus:  0.3,
		},
		Preference: PreferenceConfig{
			BudgetBonus:     0.4,
			BrandBonus:      0.3,
			CategoryBonus:   0.3,
			BudgetLowMax:    500,
			BudgetMediumMax: 2000,
		},
		Popularity: PopularityConfig{
			RatingWeight:     0.6,
			ReviewWeight:     0.4,
			MaxRating:        5,
			ReviewSaturation: 100,
		},
		Contextual: ContextualConfig{
			Baseline:          0.5,
			SameCategoryBonus: 0.3,
			SameBrandBonus:    0.2,
			LocationBonus:     0.2,
		},
		Ranking: RankingConfig{
			MinScore:          0.3,
			ConfidenceBoost:   1.2,
			ExcellentScore:    0.8,
			PopularMinRating:  4.5,
			PopularMinReviews: 50,
		},
		Matching: MatchingConfig{Mode: MatchSubstring},
		Limits: LimitsConfig{
			DefaultLimit: 6,
			MaxLimit:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Weights.Behavior < 0 || c.Weights.Preference < 0 ||
		c.Weights.Popularity < 0 || c.Weights.Contextual < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if c.Ranking.MinScore < 0 || c.Ranking.MinScore >= 1 {
		return fmt.Errorf("ranking.min_score must be in [0, 1): got %v", c.Ranking.MinScore)
	}
	if c.Ranking.ConfidenceBoost < 1 {
		return fmt.Errorf("ranking.confidence_boost must be >= 1: got %v", c.Ranking.ConfidenceBoost)
	}
	if c.Preference.BudgetLowMax <= 0 {
		return fmt.Errorf("preference.budget_low_max must be positive: got %v", c.Preference.BudgetLowMax)
	}
	if c.Preference.BudgetMediumMax < c.Preference.BudgetLowMax {
		return fmt.Errorf("preference.budget_medium_max (%v) must not be below budget_low_max (%v)",
			c.Preference.BudgetMediumMax, c.Preference.BudgetLowMax)
	}
	if c.Popularity.MaxRating <= 0 {
		return fmt.Errorf("popularity.max_rating must be positive: got %v", c.Popularity.MaxRating)
	}
	if c.Popularity.ReviewSaturation <= 0 {
		return fmt.Errorf("popularity.review_saturation must be positive: got %d", c.Popularity.ReviewSaturation)
	}
	switch c.Matching.Mode {
	case MatchSubstring, MatchToken:
	default:
		return fmt.Errorf("matching.mode must be %q or %q: got %q", MatchSubstring, MatchToken, c.Matching.Mode)
	}
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive: got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must not be below default_limit (%d)",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive: got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive: got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// BudgetFor returns the bracket a price falls into using the
// configured boundaries.
func (c PreferenceConfig) BudgetFor(price float64) BudgetRange {
	switch {
	case price < c.BudgetLowMax:
		return BudgetLow
	case price <= c.BudgetMediumMax:
		return BudgetMedium
	default:
		return BudgetHigh
	}
}
