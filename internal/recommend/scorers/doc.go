// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package scorers provides the concrete scoring strategies used by the
// recommendation engine.
//
// Each scorer evaluates one signal family and returns a value in
// [0, 1]:
//
//   - Behavior: recent searches, viewed categories, location.
//   - Preference: declared budget, brands and categories.
//   - Popularity: rating and review volume.
//   - Contextual: affinity with the product currently being viewed.
//
// Default builds the standard ensemble from an engine configuration.
package scorers
