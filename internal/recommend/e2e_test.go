// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package recommend_test

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/recommend/scorers"
)

func newEngine(t *testing.T, cfg *recommend.Config) *recommend.Engine {
	t.Helper()
	eng, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	eng.SetScorers(scorers.Default(eng.Config()))
	return eng
}

// TestFullPipelineScoring walks a realistic profile through the real
// scorer ensemble and checks the exact weighted total of the top
// result.
func TestFullPipelineScoring(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, nil)

	profile := recommend.Profile{
		ID: "u1",
		Preferences: recommend.Preferences{
			Categories: []string{"Auto Insurance"},
			Brands:     []string{"Allianz"},
			Budget:     recommend.BudgetMedium,
		},
		Behavior: recommend.Behavior{
			RecentSearches: []string{"allianz auto insurance dakar"},
			ViewedProducts: []string{"Auto Insurance"},
			Location:       "Dakar",
		},
	}

	perfect := recommend.Product{
		ID: "perfect", Name: "Allianz Auto Comfort",
		Category: "Auto Insurance", Brand: "Allianz",
		Price: 900, Rating: 5, Reviews: 200, Location: "Dakar",
	}
	weak := recommend.Product{
		ID: "weak", Name: "Budget Cable TV",
		Category: "TV", Brand: "Unknown",
		Price: 10000, Rating: 1, Reviews: 0, Location: "Paris",
	}

	resp, err := eng.Recommend(context.Background(), recommend.Request{
		Profile:    profile,
		Context:    recommend.Context{UserLocation: "Dakar", TimeOfDay: "evening"},
		Candidates: []recommend.Product{weak, perfect},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 (weak candidate filtered)", len(resp.Recommendations))
	}

	top := resp.Recommendations[0]
	if top.Product.ID != "perfect" {
		t.Fatalf("top product = %q, want %q", top.Product.ID, "perfect")
	}

	// behavior: all four bonuses, clamped to 1
	// preference: budget + brand + category = 1
	// popularity: 0.6*1 + 0.4*1 = 1
	// contextual: baseline + location = 0.7 (no current product)
	want := 0.4*1 + 0.3*1 + 0.2*1 + 0.1*0.7
	if math.Abs(top.Score-want) > 1e-4 {
		t.Errorf("score = %v, want %v", top.Score, want)
	}
	if top.Confidence != 1 {
		t.Errorf("confidence = %v, want 1 for a score above 0.84", top.Confidence)
	}
	if top.Type != recommend.TypePopular {
		t.Errorf("type = %q, want %q without a current product", top.Type, recommend.TypePopular)
	}
	if len(top.Reasoning) == 0 {
		t.Fatal("reasoning must never be empty")
	}
	if top.Reasoning[0] != "Excellent match for your profile" {
		t.Errorf("first reason = %q, want excellent match", top.Reasoning[0])
	}
}

// TestCurrentProductContext verifies the similar/complementary split
// when the user is on a product page.
func TestCurrentProductContext(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, nil)

	current := recommend.Product{ID: "cur", Category: "Home Insurance", Brand: "AXA"}
	same := recommend.Product{
		ID: "same", Category: "Home Insurance", Brand: "AXA",
		Rating: 4.0, Reviews: 80, Price: 300,
	}
	other := recommend.Product{
		ID: "other", Category: "Energy", Brand: "Engie",
		Rating: 4.0, Reviews: 80, Price: 300,
	}

	resp, err := eng.Recommend(context.Background(), recommend.Request{
		Profile:    recommend.Profile{ID: "u1"},
		Context:    recommend.Context{CurrentProduct: &current},
		Candidates: []recommend.Product{other, same},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	types := map[string]recommend.RecommendationType{}
	for _, rec := range resp.Recommendations {
		types[rec.Product.ID] = rec.Type
	}
	if types["same"] != recommend.TypeSimilar {
		t.Errorf("same-category product type = %q, want %q", types["same"], recommend.TypeSimilar)
	}
	if types["other"] != recommend.TypeComplementary {
		t.Errorf("cross-category product type = %q, want %q", types["other"], recommend.TypeComplementary)
	}
	if resp.Recommendations[0].Product.ID != "same" {
		t.Errorf("same-category product should rank first, got %q", resp.Recommendations[0].Product.ID)
	}
}

// TestBrandAndRegionScenario runs a returning shopper with a declared
// brand and budget against a matching and a mismatched offer.
func TestBrandAndRegionScenario(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, nil)

	profile := recommend.Profile{
		ID: "u-sn",
		Preferences: recommend.Preferences{
			Budget: recommend.BudgetMedium,
			Brands: []string{"Samsung"},
		},
		Behavior: recommend.Behavior{
			RecentSearches: []string{"smartphone"},
			Location:       "SN",
		},
	}
	match := recommend.Product{
		ID: "phone", Name: "Galaxy A56", Category: "smartphone", Brand: "Samsung",
		Price: 800, Rating: 4.8, Reviews: 120, Location: "SN",
	}
	miss := recommend.Product{
		ID: "laptop", Name: "Inspiron 15", Category: "laptop", Brand: "Dell",
		Price: 1500, Rating: 3.0, Reviews: 5, Location: "KE",
	}

	resp, err := eng.Recommend(context.Background(), recommend.Request{
		Profile:    profile,
		Candidates: []recommend.Product{miss, match},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) == 0 || resp.Recommendations[0].Product.ID != "phone" {
		t.Fatalf("matching offer should rank first, got %+v", resp.Recommendations)
	}

	top := resp.Recommendations[0]
	if top.Score <= 0.6 {
		t.Errorf("score = %v, want > 0.6 for a strong multi-signal match", top.Score)
	}
	var brandReason, regionReason bool
	for _, r := range top.Reasoning {
		if r == "From Samsung, one of your preferred brands" {
			brandReason = true
		}
		if r == "Available in SN" {
			regionReason = true
		}
	}
	if !brandReason || !regionReason {
		t.Errorf("reasoning %v missing brand or region entry", top.Reasoning)
	}

	for _, rec := range resp.Recommendations {
		if rec.Product.ID == "laptop" {
			t.Errorf("mismatched offer should be filtered, got score %v", rec.Score)
		}
	}
}

// TestColdStartProfile checks that a brand-new user still gets
// recommendations driven by popularity and the contextual baseline.
func TestColdStartProfile(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, nil)

	resp, err := eng.Recommend(context.Background(), recommend.Request{
		Profile: recommend.Profile{ID: "new-user"},
		Candidates: []recommend.Product{
			{ID: "popular", Category: "Banking", Rating: 4.8, Reviews: 300},
			{ID: "unknown", Category: "Banking", Rating: 0, Reviews: 0},
		},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// popular: 0.2*(0.6*0.96+0.4*1) + 0.1*0.5 = 0.2452 <= 0.3, so even
	// the strong candidate is filtered for a signal-less profile.
	if len(resp.Recommendations) != 0 {
		t.Errorf("cold start with no context should filter everything, got %d", len(resp.Recommendations))
	}
}
