// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("ok"))
	hitsBefore := testutil.ToFloat64(CacheHits)
	missesBefore := testutil.ToFloat64(CacheMisses)

	RecordRecommendation(5*time.Millisecond, 6, false, nil)
	RecordRecommendation(0, 6, true, nil)

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("ok")); got != before+2 {
		t.Errorf("ok requests = %v, want %v", got, before+2)
	}
	if got := testutil.ToFloat64(CacheHits); got != hitsBefore+1 {
		t.Errorf("cache hits = %v, want %v", got, hitsBefore+1)
	}
	if got := testutil.ToFloat64(CacheMisses); got != missesBefore+1 {
		t.Errorf("cache misses = %v, want %v", got, missesBefore+1)
	}
}

func TestRecordRecommendationError(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("error"))
	RecordRecommendation(time.Millisecond, 0, false, errors.New("boom"))
	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("error")); got != before+1 {
		t.Errorf("error requests = %v, want %v", got, before+1)
	}
}

func TestRecordInteraction(t *testing.T) {
	before := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("favorite"))
	RecordInteraction("favorite", nil)
	RecordInteraction("favorite", errors.New("storage down")) // not counted
	if got := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("favorite")); got != before+1 {
		t.Errorf("favorites recorded = %v, want %v", got, before+1)
	}
}

func TestRecordInsightsQuery(t *testing.T) {
	okBefore := testutil.ToFloat64(InsightsQueries.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(InsightsQueries.WithLabelValues("error"))

	RecordInsightsQuery(2*time.Millisecond, nil)
	RecordInsightsQuery(time.Millisecond, errors.New("unavailable"))

	if got := testutil.ToFloat64(InsightsQueries.WithLabelValues("ok")); got != okBefore+1 {
		t.Errorf("ok queries = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(InsightsQueries.WithLabelValues("error")); got != errBefore+1 {
		t.Errorf("error queries = %v, want %v", got, errBefore+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 20*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")); got != before+1 {
		t.Errorf("api requests = %v, want %v", got, before+1)
	}
}
