// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

/*
Package metrics provides Prometheus metrics collection and export for
observability.

# Overview

The package instruments:
  - Recommendation engine throughput, latency and result sizes
  - Response cache hit/miss rates
  - Interaction store writes, errors and size
  - Insights query performance
  - HTTP endpoint latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Engine Metrics:
  - recommendation_requests_total: Engine invocations (counter)
    Labels: result (ok, error)
  - recommendation_duration_seconds: Generation latency (histogram)
  - recommendations_returned: Result sizes per request (histogram)
  - recommendations_by_type_total: Served recommendations (counter)
    Labels: type (similar, complementary, popular, personalized)
  - recommendation_cache_hits_total / recommendation_cache_misses_total

Store Metrics:
  - interactions_recorded_total: Stored interactions (counter)
    Labels: type (view, click, compare, favorite)
  - interaction_errors_total: Failed writes (counter)
    Labels: reason (validation, storage)
  - interaction_store_entries: Current store size (gauge)

API Metrics:
  - api_requests_total: HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

# Usage Example

	import (
	    "github.com/sunudeal/reco/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    metrics.SetAppInfo("1.0.0")
	    http.Handle("/metrics", promhttp.Handler())

	    metrics.RecordRecommendation(3*time.Millisecond, 6, false, nil)
	    metrics.RecordInteraction("view", nil)
	}

# Cardinality Management

Endpoint labels carry route patterns, never raw paths with IDs, and
user identifiers are never used as label values.

# Thread Safety

All metric recording functions are thread-safe and designed for
concurrent use from multiple goroutines.
*/
package metrics
