// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package config defines the service configuration and its layered
// loading: built-in defaults, an optional YAML file, then environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/sunudeal/reco/internal/insights"
	"github.com/sunudeal/reco/internal/logging"
	"github.com/sunudeal/reco/internal/recommend"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0.
	Host string `koanf:"host"`
	// Port is the listen port. Default: 8080.
	Port int `koanf:"port" validate:"gt=0,lte=65535"`
	// ReadTimeout bounds request reads. Default: 15s.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// WriteTimeout bounds response writes. Default: 30s.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// Environment is "development" or "production". Default: development.
	Environment string `koanf:"environment"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	// RateLimitReqs is the allowed requests per window per client.
	// Default: 100.
	RateLimitReqs int `koanf:"rate_limit_reqs"`
	// RateLimitWindow is the rate limit window. Default: 1m.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// RateLimitDisabled turns rate limiting off. Default: false.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
	// CORSOrigins lists allowed origins. Default: ["*"].
	CORSOrigins []string `koanf:"cors_origins"`
}

// StoreConfig selects and tunes the interaction store backend.
type StoreConfig struct {
	// Backend is "memory" or "badger". Default: memory.
	Backend string `koanf:"backend" validate:"oneof=memory badger"`
	// Path is the BadgerDB directory, required for the badger backend.
	// Default: /data/interactions.
	Path string `koanf:"path"`
	// MaxEntries is the global interaction capacity; the oldest
	// interactions are evicted past it. Default: 500.
	MaxEntries int `koanf:"max_entries" validate:"gt=0"`
	// GCInterval is how often the badger backend runs value-log
	// garbage collection. Default: 10m.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Security  SecurityConfig   `koanf:"security"`
	Store     StoreConfig      `koanf:"store"`
	Recommend recommend.Config `koanf:"recommend"`
	Insights  insights.Config  `koanf:"insights"`
	Logging   logging.Config   `koanf:"logging"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535: got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production: got %q", c.Server.Environment)
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreBadger:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q: got %q", StoreMemory, StoreBadger, c.Store.Backend)
	}
	if c.Store.MaxEntries <= 0 {
		return fmt.Errorf("store.max_entries must be positive: got %d", c.Store.MaxEntries)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive: got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive: got %v", c.Security.RateLimitWindow)
		}
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if c.Insights.TopN <= 0 {
		return fmt.Errorf("insights.top_n must be positive: got %d", c.Insights.TopN)
	}
	if c.Insights.ActivitySaturation <= 0 {
		return fmt.Errorf("insights.activity_saturation must be positive: got %d", c.Insights.ActivitySaturation)
	}
	return nil
}
