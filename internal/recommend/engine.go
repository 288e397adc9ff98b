// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine ranks candidate products for a user profile. Construct with
// NewEngine, register scorers with SetScorers or RegisterScorer, then
// call Recommend. All methods are safe for concurrent use.
type Engine struct {
	mu      sync.RWMutex
	cfg     *Config
	scorers []Scorer
	logger  zerolog.Logger

	cacheMu sync.Mutex
	cache   map[string]cacheEntry

	requests  atomic.Int64
	cacheHits atomic.Int64
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// Metrics is a snapshot of the engine's internal counters.
type Metrics struct {
	Requests  int64 `json:"requests"`
	CacheHits int64 `json:"cache_hits"`
	CacheSize int   `json:"cache_size"`
}

// NewEngine creates an engine with the given configuration. A nil
// configuration selects the defaults.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:    cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  make(map[string]cacheEntry),
	}, nil
}

// RegisterScorer adds a scorer to the ensemble. Registering a scorer
// whose name is already present replaces the previous one.
func (e *Engine) RegisterScorer(s Scorer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.scorers {
		if existing.Name() == s.Name() {
			e.scorers[i] = s
			return
		}
	}
	e.scorers = append(e.scorers, s)
}

// SetScorers replaces the full scorer set.
func (e *Engine) SetScorers(scorers []Scorer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scorers = scorers
	e.cacheMu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.cacheMu.Unlock()
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// UpdateConfig swaps the engine configuration after validating it and
// invalidates the response cache. Scorers are not rebuilt here; callers
// that tune scorer parameters should follow up with SetScorers.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}
	e.mu.Lock()
	e.cfg = cfg.Clone()
	e.mu.Unlock()

	e.cacheMu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.cacheMu.Unlock()

	e.logger.Info().Msg("Engine configuration updated, response cache invalidated")
	return nil
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	e.cacheMu.Lock()
	size := len(e.cache)
	e.cacheMu.Unlock()
	return Metrics{
		Requests:  e.requests.Load(),
		CacheHits: e.cacheHits.Load(),
		CacheSize: size,
	}
}

// Recommend scores, filters and ranks the request's candidates.
//
// Candidates whose weighted total does not exceed the configured
// minimum score are dropped. Survivors are sorted by total descending,
// ties broken by popularity sub-score and then by candidate order, and
// the list is truncated to the request limit.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requests.Add(1)

	e.mu.RLock()
	cfg := e.cfg
	scorers := e.scorers
	e.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(scorers) == 0 {
		return nil, fmt.Errorf("no scorers registered")
	}
	if req.Profile.ID == "" {
		return nil, fmt.Errorf("profile id is required")
	}

	limit := req.Limit
	switch {
	case limit == 0:
		limit = cfg.Limits.DefaultLimit
	case limit > cfg.Limits.MaxLimit:
		limit = cfg.Limits.MaxLimit
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	key := cacheKey(req, limit)
	if cfg.Cache.Enabled {
		if cached := e.cacheGet(key); cached != nil {
			e.cacheHits.Add(1)
			resp := *cached
			resp.Metadata.RequestID = requestID
			resp.Metadata.CacheHit = true
			resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
			return &resp, nil
		}
	}

	recs := e.rank(cfg, scorers, req, limit)

	resp := &Response{
		Recommendations: recs,
		TotalCandidates: len(req.Candidates),
		Metadata: ResponseMetadata{
			RequestID:   requestID,
			ProfileID:   req.Profile.ID,
			GeneratedAt: time.Now().UTC(),
			LatencyMS:   time.Since(start).Milliseconds(),
		},
	}

	if cfg.Cache.Enabled {
		e.cachePut(key, resp, cfg.Cache)
	}

	e.logger.Debug().
		Str("request_id", requestID).
		Str("profile_id", req.Profile.ID).
		Int("candidates", len(req.Candidates)).
		Int("recommendations", len(recs)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Recommendations generated")

	return resp, nil
}

type scoredCandidate struct {
	product Product
	total   float64
	scores  map[string]float64
	index   int
}

func (e *Engine) rank(cfg *Config, scorers []Scorer, req Request, limit int) []Recommendation {
	if limit < 0 || len(req.Candidates) == 0 {
		return []Recommendation{}
	}

	weights := cfg.Weights.Normalize().ToMap()

	scored := make([]scoredCandidate, 0, len(req.Candidates))
	for i, p := range req.Candidates {
		scores := make(map[string]float64, len(scorers))
		total := 0.0
		for _, s := range scorers {
			v := clamp01(s.Score(p, req.Profile, req.Context))
			scores[s.Name()] = v
			total += weights[s.Name()] * v
		}
		total = clamp01(total)
		if total <= cfg.Ranking.MinScore {
			continue
		}
		scored = append(scored, scoredCandidate{product: p, total: total, scores: scores, index: i})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].total != scored[j].total {
			return scored[i].total > scored[j].total
		}
		return scored[i].scores[ScorerPopularity] > scored[j].scores[ScorerPopularity]
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	recs := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		recs = append(recs, Recommendation{
			Product:    sc.product,
			Score:      round4(sc.total),
			Confidence: round4(math.Min(sc.total*cfg.Ranking.ConfidenceBoost, 1)),
			Scores:     sc.scores,
			Type:       classify(sc.product, req.Context, cfg),
			Reasoning:  buildReasons(sc.product, sc.total, req.Profile, req.Context, cfg),
		})
	}
	return recs
}

// cacheKey identifies a request by everything that affects its output
// except the candidate scores themselves: profile, context and limit.
// Candidate sets for a given profile/context are stable within a TTL
// window, so candidates are deliberately left out of the key.
func cacheKey(req Request, limit int) string {
	currentID := ""
	if req.Context.CurrentProduct != nil {
		currentID = req.Context.CurrentProduct.ID
	}
	return fmt.Sprintf("rec:%s:%s:%s:%d", req.Profile.ID, currentID, req.Context.UserLocation, limit)
}

func (e *Engine) cacheGet(key string) *Response {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	entry, ok := e.cache[key]
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(e.cache, key)
		return nil
	}
	return entry.response
}

func (e *Engine) cachePut(key string, resp *Response, cfg CacheConfig) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if len(e.cache) >= cfg.MaxEntries {
		e.evictLocked(cfg.MaxEntries)
	}
	e.cache[key] = cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(cfg.TTL),
	}
}

// evictLocked drops expired entries, then the oldest entry if the
// cache is still full. Caller must hold cacheMu.
func (e *Engine) evictLocked(maxEntries int) {
	now := time.Now()
	for k, v := range e.cache {
		if now.After(v.expiresAt) {
			delete(e.cache, k)
		}
	}
	if len(e.cache) < maxEntries {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, v := range e.cache {
		if oldestKey == "" || v.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = v.expiresAt
		}
	}
	if oldestKey != "" {
		delete(e.cache, oldestKey)
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
