// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package recommend

import (
	"strings"
	"time"
)

// Product is a marketplace offer that can be recommended. Products come
// from the comparison catalog (insurance, telecom, energy, banking) and
// carry the attributes the scorers evaluate.
type Product struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	Reviews  int     `json:"reviews" validate:"gte=0"`
	Location string  `json:"location"`
	ImageURL string  `json:"image_url,omitempty"`
}

// BudgetRange buckets a user's spending appetite. The price boundaries
// between buckets are configurable, see PreferenceConfig.
type BudgetRange string

const (
	BudgetLow    BudgetRange = "low"
	BudgetMedium BudgetRange = "medium"
	BudgetHigh   BudgetRange = "high"
)

// Valid reports whether the budget range is one of the known buckets.
// An empty value is valid and means the user expressed no budget.
func (b BudgetRange) Valid() bool {
	switch b {
	case "", BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// RiskTolerance expresses how adventurous the user's picks should be.
// Collected during onboarding; reserved for future scorers.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Valid reports whether the risk tolerance is one of the known levels.
// An empty value is valid and means the user expressed no preference.
func (r RiskTolerance) Valid() bool {
	switch r {
	case "", RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// Preferences are the user's declared tastes, collected during
// onboarding or edited in account settings.
type Preferences struct {
	Categories    []string      `json:"categories"`
	Brands        []string      `json:"brands"`
	Budget        BudgetRange   `json:"budget" validate:"omitempty,budget_range"`
	RiskTolerance RiskTolerance `json:"risk_tolerance" validate:"omitempty,oneof=conservative moderate aggressive"`
}

// Behavior is the user's observed activity on the marketplace.
// ViewedProducts holds category markers for the product pages the user
// opened; ComparedProducts the IDs they put side by side.
type Behavior struct {
	RecentSearches   []string `json:"recent_searches"`
	ViewedProducts   []string `json:"viewed_products"`
	ComparedProducts []string `json:"compared_products"`
	Location         string   `json:"location"`
}

// Profile aggregates everything the engine knows about a user.
type Profile struct {
	ID          string      `json:"id" validate:"required"`
	Preferences Preferences `json:"preferences"`
	Behavior    Behavior    `json:"behavior"`
}

// Context describes the browsing situation the recommendations are
// generated for. CurrentProduct is the product page the user is on, if
// any; it drives the contextual scorer and the similar/complementary
// classification. All fields are optional and their absence degrades
// to the contextual baseline.
type Context struct {
	CurrentProduct *Product `json:"current_product,omitempty"`
	SearchQuery    string   `json:"search_query,omitempty"`
	UserLocation   string   `json:"user_location,omitempty"`
	TimeOfDay      string   `json:"time_of_day,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	Season         string   `json:"season,omitempty" validate:"omitempty,oneof=dry rainy"`
}

// RecommendationType labels why a product was recommended. Types are
// assigned by priority: similar, then complementary, then popular, then
// personalized as the catch-all.
type RecommendationType string

const (
	TypeSimilar       RecommendationType = "similar"
	TypeComplementary RecommendationType = "complementary"
	TypePopular       RecommendationType = "popular"
	TypePersonalized  RecommendationType = "personalized"
)

// Recommendation is a ranked product with its scoring breakdown.
type Recommendation struct {
	Product    Product            `json:"product"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
	Type       RecommendationType `json:"type"`
	Reasoning  []string           `json:"reasoning"`
}

// Request asks the engine to rank Candidates for Profile in Context.
//
// Limit bounds the number of recommendations returned. Zero means "use
// the configured default"; a negative limit yields an empty result.
type Request struct {
	Profile    Profile   `json:"profile" validate:"required"`
	Context    Context   `json:"context"`
	Candidates []Product `json:"candidates" validate:"required,dive"`
	Limit      int       `json:"limit,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

// ResponseMetadata carries per-request diagnostics.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	ProfileID   string    `json:"profile_id"`
	GeneratedAt time.Time `json:"generated_at"`
	LatencyMS   int64     `json:"latency_ms"`
	CacheHit    bool      `json:"cache_hit"`
}

// Response is the ranked recommendation list for one request.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalCandidates int              `json:"total_candidates"`
	Metadata        ResponseMetadata `json:"metadata"`
}

// InteractionType classifies a recorded user action on a product.
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionClick    InteractionType = "click"
	InteractionCompare  InteractionType = "compare"
	InteractionFavorite InteractionType = "favorite"
)

// Valid reports whether the interaction type is one of the known kinds.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionClick, InteractionCompare, InteractionFavorite:
		return true
	}
	return false
}

// Weight returns the engagement strength of the interaction type, used
// when aggregating interactions into user insights. A favorite signals
// much stronger intent than a passing view.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionView:
		return 0.2
	case InteractionClick:
		return 0.4
	case InteractionCompare:
		return 0.7
	case InteractionFavorite:
		return 1.0
	default:
		return 0.0
	}
}

// Interaction is one recorded user action. Category, Brand and Price
// are denormalized from the product at recording time so insights can
// be computed without a catalog lookup.
type Interaction struct {
	UserID    string          `json:"user_id" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Type      InteractionType `json:"type" validate:"required"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Price     float64         `json:"price" validate:"gte=0"`
	Timestamp time.Time       `json:"timestamp"`
}

// Scorer evaluates one aspect of how well a product fits a user. The
// returned value must be in [0, 1]; the engine clamps out-of-range
// values defensively. Name must match a key in Weights.ToMap.
type Scorer interface {
	Name() string
	Score(product Product, profile Profile, rctx Context) float64
}

// EqualFold is strings.EqualFold with surrounding whitespace ignored.
// Catalog data and user input arrive with inconsistent casing and
// stray spaces, so all attribute comparisons go through here.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContainsFold reports whether any element of list matches s
// case-insensitively.
func ContainsFold(list []string, s string) bool {
	for _, v := range list {
		if EqualFold(v, s) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
