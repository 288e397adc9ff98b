// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package services wraps the service's long-running components as
// suture.Service implementations so the supervision tree can restart
// them independently.
//
// Each wrapper translates a component's own lifecycle (blocking
// ListenAndServe, periodic tick loops) into suture's context-aware
// Serve(ctx) contract.
package services
