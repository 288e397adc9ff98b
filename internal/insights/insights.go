// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package insights derives per-user profile summaries from recorded
// interactions: which categories and brands a user engages with, the
// price band they browse in and how active they are. Every value is
// computed from stored interaction data.
package insights

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/store"
)

// Config tunes insight generation.
type Config struct {
	// TopN bounds the category and brand affinity lists. Default: 3.
	TopN int `koanf:"top_n" json:"top_n" validate:"gt=0"`
	// ActivitySaturation is the interaction count at which the
	// activity score reaches 1. Default: 20.
	ActivitySaturation int `koanf:"activity_saturation" json:"activity_saturation" validate:"gt=0"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{TopN: 3, ActivitySaturation: 20}
}

// Affinity is a category or brand with its engagement strength. Score
// is the interaction-weight sum normalized against the strongest
// entry, so the top affinity is always 1.
type Affinity struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// PriceRange summarizes the prices of the products a user interacted
// with. Zero-priced interactions are excluded.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Insights is the derived profile summary for one user.
type Insights struct {
	UserID           string     `json:"user_id"`
	InteractionCount int        `json:"interaction_count"`
	TopCategories    []Affinity `json:"top_categories"`
	FavoriteBrands   []Affinity `json:"favorite_brands"`
	PriceRange       PriceRange `json:"price_range"`
	ActivityScore    float64    `json:"activity_score"`
	GeneratedAt      time.Time  `json:"generated_at"`
}

// Analyzer computes Insights from a backing interaction store.
type Analyzer struct {
	store  store.Store
	cfg    Config
	logger zerolog.Logger
}

// NewAnalyzer creates an analyzer over the given store.
func NewAnalyzer(s store.Store, cfg Config, logger zerolog.Logger) *Analyzer {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if cfg.ActivitySaturation <= 0 {
		cfg.ActivitySaturation = DefaultConfig().ActivitySaturation
	}
	return &Analyzer{
		store:  s,
		cfg:    cfg,
		logger: logger.With().Str("component", "insights").Logger(),
	}
}

// ForUser derives insights from the user's stored interactions. A user
// with no interactions gets a zero-activity summary with empty
// affinity lists, not an error.
func (a *Analyzer) ForUser(ctx context.Context, userID string) (*Insights, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	interactions, err := a.store.Query(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query interactions for %s: %w", userID, err)
	}

	ins := &Insights{
		UserID:           userID,
		InteractionCount: len(interactions),
		TopCategories:    []Affinity{},
		FavoriteBrands:   []Affinity{},
		ActivityScore:    activityScore(len(interactions), a.cfg.ActivitySaturation),
		GeneratedAt:      time.Now().UTC(),
	}
	if len(interactions) == 0 {
		return ins, nil
	}

	ins.TopCategories = topAffinities(interactions, a.cfg.TopN, func(in recommend.Interaction) string {
		return in.Category
	})
	ins.FavoriteBrands = topAffinities(interactions, a.cfg.TopN, func(in recommend.Interaction) string {
		return in.Brand
	})
	ins.PriceRange = priceRange(interactions)

	a.logger.Debug().
		Str("user_id", userID).
		Int("interactions", len(interactions)).
		Float64("activity_score", ins.ActivityScore).
		Msg("Insights generated")

	return ins, nil
}

func activityScore(count, saturation int) float64 {
	score := float64(count) / float64(saturation)
	if score > 1 {
		return 1
	}
	return score
}

// topAffinities aggregates interactions by the keyed attribute,
// weighting each interaction by its type. Entries are sorted by weight
// descending with count and name as tie-breaks, truncated to n, and
// normalized so the strongest entry scores 1.
func topAffinities(interactions []recommend.Interaction, n int, key func(recommend.Interaction) string) []Affinity {
	weights := map[string]float64{}
	counts := map[string]int{}
	for _, in := range interactions {
		k := key(in)
		if k == "" {
			continue
		}
		weights[k] += in.Type.Weight()
		counts[k]++
	}

	out := make([]Affinity, 0, len(weights))
	for name, w := range weights {
		out = append(out, Affinity{Name: name, Score: w, Count: counts[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	if len(out) > 0 && out[0].Score > 0 {
		max := out[0].Score
		for i := range out {
			out[i].Score = out[i].Score / max
		}
	}
	return out
}

func priceRange(interactions []recommend.Interaction) PriceRange {
	var pr PriceRange
	sum, n := 0.0, 0
	for _, in := range interactions {
		if in.Price <= 0 {
			continue
		}
		if n == 0 || in.Price < pr.Min {
			pr.Min = in.Price
		}
		if in.Price > pr.Max {
			pr.Max = in.Price
		}
		sum += in.Price
		n++
	}
	if n > 0 {
		pr.Average = sum / float64(n)
	}
	return pr
}
