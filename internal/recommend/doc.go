// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package recommend implements the recommendation engine for the
// SunuDeal marketplace.
//
// The engine ranks candidate products for a user by combining the
// output of several independent scorers (behavioral, preference,
// popularity, contextual) through a weighted ensemble. Each scorer
// produces a value in [0, 1]; the engine normalizes the configured
// weights, computes the weighted total per candidate, discards
// candidates below the minimum score threshold, sorts the survivors,
// and annotates the top results with a confidence value, a
// recommendation type and human-readable reasoning.
//
// Scorers implement the Scorer interface and are registered on the
// engine at startup. The concrete implementations live in the scorers
// subpackage; the engine itself only depends on the interface, so
// scoring strategies can be swapped or extended without touching the
// ranking pipeline.
//
// Responses are cached in-process with a configurable TTL keyed by
// profile, context and limit. The engine is safe for concurrent use.
package recommend
