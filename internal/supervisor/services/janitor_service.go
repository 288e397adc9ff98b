// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunudeal/reco/internal/metrics"
)

// InteractionStore is the slice of the store API the janitor needs.
type InteractionStore interface {
	Len(ctx context.Context) (int, error)
}

// GarbageCollector is implemented by store backends that reclaim disk
// space out of band (the Badger backend's value-log GC). Backends
// without maintenance needs simply aren't passed in.
type GarbageCollector interface {
	RunGC() error
}

// StoreJanitorService periodically maintains the interaction store:
// it refreshes the store size gauge and, when the backend supports it,
// triggers garbage collection.
//
// Example usage:
//
//	svc := services.NewStoreJanitorService(st, badgerStore, 10*time.Minute, logger)
//	tree.AddStorageService(svc)
type StoreJanitorService struct {
	store    InteractionStore
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreJanitorService creates a janitor running every interval.
// A non-positive interval selects 10 minutes. gc may be nil for
// backends that need no maintenance.
func NewStoreJanitorService(store InteractionStore, gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreJanitorService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreJanitorService{
		store:    store,
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("component", "store-janitor").Logger(),
		name:     "store-janitor",
	}
}

// Serve implements suture.Service. It runs one maintenance pass
// immediately, then one per interval until the context is canceled.
func (s *StoreJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.maintain(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.maintain(ctx)
		}
	}
}

func (s *StoreJanitorService) maintain(ctx context.Context) {
	if n, err := s.store.Len(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Store size check failed")
	} else {
		metrics.StoreSize.Set(float64(n))
	}

	if s.gc == nil {
		return
	}
	start := time.Now()
	if err := s.gc.RunGC(); err != nil {
		s.logger.Warn().Err(err).Msg("Store GC failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Store GC pass complete")
}

// String implements fmt.Stringer for logging.
func (s *StoreJanitorService) String() string {
	return s.name
}
