// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package main is the entry point for the Reco server application.
//
// Reco scores product candidates against a user profile for the SunuDeal
// comparison marketplace and serves the results over a REST API. It also
// records user interactions and derives per-user insights from them.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config.yaml and
//     environment variables (Koanf v2)
//  2. Interaction store: in-memory ring or BadgerDB persistence
//  3. Recommendation engine: weighted scorer ensemble with response cache
//  4. Insights analyzer: per-user aggregates over recorded interactions
//  5. HTTP server: chi router with rate limiting, CORS and Prometheus
//     metrics, run under a suture supervision tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, STORE_BACKEND, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (shutdown timeout)
//   - Closes the interaction store
//
// # Example Usage
//
// Development with the in-memory store:
//
//	export LOG_FORMAT=console
//	./reco
//
// Production with persistent interactions:
//
//	export STORE_BACKEND=badger
//	export STORE_PATH=/data/interactions
//	export CORS_ORIGINS=https://www.sunudeal.com
//	./reco
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunudeal/reco/internal/api"
	"github.com/sunudeal/reco/internal/config"
	"github.com/sunudeal/reco/internal/insights"
	"github.com/sunudeal/reco/internal/logging"
	"github.com/sunudeal/reco/internal/metrics"
	"github.com/sunudeal/reco/internal/recommend"
	"github.com/sunudeal/reco/internal/recommend/scorers"
	"github.com/sunudeal/reco/internal/store"
	"github.com/sunudeal/reco/internal/supervisor"
	"github.com/sunudeal/reco/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: cfg.Logging.Timestamp,
	})

	logging.Info().
		Str("version", version).
		Str("store_backend", cfg.Store.Backend).
		Int("http_port", cfg.Server.Port).
		Msg("Starting Reco")

	metrics.SetAppInfo(version)

	// Interaction store
	var (
		st store.Store
		gc services.GarbageCollector
	)
	switch cfg.Store.Backend {
	case config.StoreBadger:
		badgerStore, err := store.NewBadger(cfg.Store.Path, cfg.Store.MaxEntries)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("Failed to open interaction store")
		}
		st = badgerStore
		gc = badgerStore
		logging.Info().Str("path", cfg.Store.Path).Int("max_entries", cfg.Store.MaxEntries).Msg("BadgerDB interaction store opened")
	default:
		st = store.NewMemory(cfg.Store.MaxEntries)
		logging.Info().Int("max_entries", cfg.Store.MaxEntries).Msg("In-memory interaction store initialized")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing interaction store")
		}
	}()

	// Recommendation engine with the default scorer ensemble
	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetScorers(scorers.Default(engine.Config()))

	analyzer := insights.NewAnalyzer(st, cfg.Insights, logging.Logger())

	handler := api.NewHandler(engine, st, analyzer, logging.Logger(), version)
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStorageService(services.NewStoreJanitorService(st, gc, cfg.Store.GCInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Track uptime while the supervisor runs
	go trackUptime(ctx)

	// Signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor has fully stopped
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// trackUptime refreshes the uptime gauge until the context ends.
func trackUptime(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}
