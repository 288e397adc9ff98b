// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/sunudeal/reco/internal/insights"
	"github.com/sunudeal/reco/internal/models"
	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/recommend/scorers"
	"github.com/sunudeal/reco/internal/store"
)

type testEnv struct {
	server *httptest.Server
	store  *store.Memory
	engine *recommend.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	eng, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	eng.SetScorers(scorers.Default(eng.Config()))

	s := store.NewMemory(0)
	analyzer := insights.NewAnalyzer(s, insights.DefaultConfig(), zerolog.Nop())
	handler := NewHandler(eng, s, analyzer, zerolog.Nop(), "test")

	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	srv := httptest.NewServer(NewRouter(handler, mw).Setup())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = s.Close() })

	return &testEnv{server: srv, store: s, engine: eng}
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) models.APIResponse {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func sampleRecommendationsBody() map[string]interface{} {
	return map[string]interface{}{
		"profile": map[string]interface{}{
			"id": "u1",
			"preferences": map[string]interface{}{
				"categories": []string{"Auto Insurance"},
				"brands":     []string{"Allianz"},
				"budget":     "medium",
			},
			"behavior": map[string]interface{}{
				"recent_searches": []string{"allianz auto insurance"},
				"viewed_products": []string{"Auto Insurance"},
				"location":        "Dakar",
			},
		},
		"candidates": []map[string]interface{}{
			{
				"id": "p1", "name": "Allianz Auto Comfort", "category": "Auto Insurance",
				"brand": "Allianz", "price": 900.0, "rating": 4.8, "reviews": 200, "location": "Dakar",
			},
			{
				"id": "p2", "name": "Bad Offer", "category": "TV",
				"brand": "Nobody", "price": 9999.0, "rating": 1.0, "reviews": 0, "location": "Paris",
			},
		},
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/api/v1/recommendations", sampleRecommendationsBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)
	if envlp.Status != "success" {
		t.Fatalf("envelope status = %q, want success", envlp.Status)
	}

	data, err := json.Marshal(envlp.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var recResp recommend.Response
	if err := json.Unmarshal(data, &recResp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if recResp.TotalCandidates != 2 {
		t.Errorf("total_candidates = %d, want 2", recResp.TotalCandidates)
	}
	if len(recResp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 (weak candidate filtered)", len(recResp.Recommendations))
	}
	top := recResp.Recommendations[0]
	if top.Product.ID != "p1" {
		t.Errorf("top product = %q, want p1", top.Product.ID)
	}
	if top.Confidence < top.Score || top.Confidence > 1 {
		t.Errorf("confidence %v out of range for score %v", top.Confidence, top.Score)
	}
	if len(top.Reasoning) == 0 {
		t.Error("reasoning must not be empty")
	}
}

func TestRecommendationsValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing profile id", func(t *testing.T) {
		body := sampleRecommendationsBody()
		body["profile"] = map[string]interface{}{"id": ""}
		resp := env.postJSON(t, "/api/v1/recommendations", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		envlp := decodeEnvelope(t, resp)
		if envlp.Error == nil || envlp.Error.Code != models.ErrCodeValidation {
			t.Errorf("error = %+v, want VALIDATION_ERROR", envlp.Error)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		body := sampleRecommendationsBody()
		body["candidates"] = []map[string]interface{}{}
		resp := env.postJSON(t, "/api/v1/recommendations", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		_ = resp.Body.Close()
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(env.server.URL+"/api/v1/recommendations", "application/json",
			strings.NewReader("{not json"))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		_ = resp.Body.Close()
	})
}

func TestInteractionsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"user_id":    "u1",
		"product_id": "p1",
		"type":       "favorite",
		"category":   "Telecom",
		"brand":      "Orange",
		"price":      25.0,
	}
	resp := env.postJSON(t, "/api/v1/interactions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)
	data, ok := envlp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data has type %T", envlp.Data)
	}
	if data["recorded"] != true {
		t.Errorf("recorded = %v, want true", data["recorded"])
	}
	if total, _ := data["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}

	got, err := env.store.Query(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 || got[0].Brand != "Orange" || got[0].Price != 25 {
		t.Errorf("stored interaction = %+v, want denormalized fields kept", got)
	}
}

func TestInteractionsValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/api/v1/interactions", map[string]interface{}{
		"user_id":    "u1",
		"product_id": "p1",
		"type":       "purchase",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)
	if envlp.Error == nil || envlp.Error.Code != models.ErrCodeValidation {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envlp.Error)
	}
}

func TestInteractionsStorageUnavailable(t *testing.T) {
	env := newTestEnv(t)
	_ = env.store.Close()

	resp := env.postJSON(t, "/api/v1/interactions", map[string]interface{}{
		"user_id":    "u1",
		"product_id": "p1",
		"type":       "view",
	})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)
	if envlp.Error == nil || envlp.Error.Code != models.ErrCodeStorageUnavailable {
		t.Errorf("error = %+v, want STORAGE_UNAVAILABLE", envlp.Error)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	for _, typ := range []string{"view", "view", "favorite"} {
		resp := env.postJSON(t, "/api/v1/interactions", map[string]interface{}{
			"user_id":    "u7",
			"product_id": "p1",
			"type":       typ,
			"category":   "Energy",
			"brand":      "Engie",
			"price":      60.0,
		})
		_ = resp.Body.Close()
	}

	resp, err := http.Get(env.server.URL + "/api/v1/insights/u7")
	if err != nil {
		t.Fatalf("GET insights: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)

	data, err := json.Marshal(envlp.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var ins insights.Insights
	if err := json.Unmarshal(data, &ins); err != nil {
		t.Fatalf("unmarshal insights: %v", err)
	}
	if ins.UserID != "u7" || ins.InteractionCount != 3 {
		t.Errorf("insights = %+v, want 3 interactions for u7", ins)
	}
	if len(ins.TopCategories) != 1 || ins.TopCategories[0].Name != "Energy" {
		t.Errorf("top categories = %+v, want Energy", ins.TopCategories)
	}
	if ins.PriceRange.Average != 60 {
		t.Errorf("price average = %v, want 60", ins.PriceRange.Average)
	}
}

func TestEngineConfigEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/recommendations/config")
	if err != nil {
		t.Fatalf("GET config: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envlp := decodeEnvelope(t, resp)
	data, err := json.Marshal(envlp.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var cfg recommend.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if cfg.Weights.Behavior != 0.4 {
		t.Errorf("behavior weight = %v, want default 0.4", cfg.Weights.Behavior)
	}

	// PUT a modified config and confirm it takes effect.
	cfg.Limits.DefaultLimit = 3
	data, _ = json.Marshal(cfg)
	req, err := http.NewRequest(http.MethodPut, env.server.URL+"/api/v1/recommendations/config", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT config: %v", err)
	}
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", putResp.StatusCode)
	}
	_ = putResp.Body.Close()

	if got := env.engine.Config().Limits.DefaultLimit; got != 3 {
		t.Errorf("default limit after PUT = %d, want 3", got)
	}

	// An invalid config must be rejected and leave the old one active.
	cfg.Ranking.ConfidenceBoost = 0.1
	data, _ = json.Marshal(cfg)
	req, _ = http.NewRequest(http.MethodPut, env.server.URL+"/api/v1/recommendations/config", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	badResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT config: %v", err)
	}
	if badResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("PUT invalid status = %d, want 400", badResp.StatusCode)
	}
	_ = badResp.Body.Close()
	if got := env.engine.Config().Ranking.ConfidenceBoost; got != 1.2 {
		t.Errorf("confidence boost after rejected PUT = %v, want 1.2", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/health/live")
	if err != nil {
		t.Fatalf("GET live: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("live status = %d, want 200", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp, err = http.Get(env.server.URL + "/api/v1/health/ready")
	if err != nil {
		t.Fatalf("GET ready: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready status = %d, want 200", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// A closed store makes the service not ready.
	_ = env.store.Close()
	resp, err = http.Get(env.server.URL + "/api/v1/health/ready")
	if err != nil {
		t.Fatalf("GET ready: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("ready status with closed store = %d, want 503", resp.StatusCode)
	}
	_ = resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
