// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Recommendation engine throughput and latency
// - Response cache efficiency
// - Interaction store writes and evictions
// - Insights queries
// - API endpoint latency and throughput

var (
	// Engine Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"result"}, // "ok", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 10, 20, 50},
		},
	)

	RecommendationsByType = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_by_type_total",
			Help: "Total recommendations served, by recommendation type",
		},
		[]string{"type"}, // "similar", "complementary", "popular", "personalized"
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Interaction Store Metrics
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of interactions recorded",
		},
		[]string{"type"}, // "view", "click", "compare", "favorite"
	)

	InteractionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_errors_total",
			Help: "Total number of failed interaction writes",
		},
		[]string{"reason"}, // "validation", "storage"
	)

	StoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_store_entries",
			Help: "Current number of stored interactions",
		},
	)

	// Insights Metrics
	InsightsQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_queries_total",
			Help: "Total number of insights queries",
		},
		[]string{"result"}, // "ok", "error"
	)

	InsightsDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insights_duration_seconds",
			Help:    "Duration of insights generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordRecommendation records one engine invocation.
func RecordRecommendation(duration time.Duration, returned int, cacheHit bool, err error) {
	if err != nil {
		RecommendationRequests.WithLabelValues("error").Inc()
		return
	}
	RecommendationRequests.WithLabelValues("ok").Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationsReturned.Observe(float64(returned))
	if cacheHit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordInteraction records an interaction write outcome.
func RecordInteraction(interactionType string, err error) {
	if err == nil {
		InteractionsRecorded.WithLabelValues(interactionType).Inc()
	}
}

// RecordInsightsQuery records an insights query outcome.
func RecordInsightsQuery(duration time.Duration, err error) {
	if err != nil {
		InsightsQueries.WithLabelValues("error").Inc()
		return
	}
	InsightsQueries.WithLabelValues("ok").Inc()
	InsightsDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes the build information gauge.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
