// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package api provides the HTTP surface of the recommendation service
// using the Chi router.
//
// Endpoints:
//
//	POST /api/v1/recommendations          Generate ranked recommendations
//	GET  /api/v1/recommendations/config   Read the active engine configuration
//	PUT  /api/v1/recommendations/config   Replace the engine configuration
//	POST /api/v1/interactions             Record a user interaction
//	GET  /api/v1/insights/{userID}        Derived profile insights
//	GET  /api/v1/health/live              Liveness probe
//	GET  /api/v1/health/ready             Readiness probe (checks the store)
//	GET  /metrics                         Prometheus metrics
//
// All responses use the models.APIResponse envelope. Middleware:
// request IDs, panic recovery, real-IP extraction, CORS, per-IP rate
// limiting and Prometheus instrumentation.
package api
