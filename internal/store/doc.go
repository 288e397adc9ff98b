// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package store persists user interactions (views, clicks, compares,
// favorites) for the recommendation service.
//
// Two backends implement the Store interface: Memory, a bounded
// in-process ring suitable for tests and single-instance deployments,
// and Badger, a durable embedded store that survives restarts. Both
// enforce a global capacity limit by evicting the oldest interactions
// first.
package store
