// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

// Package config loads and validates the server configuration using
// Koanf v2 with layered sources (defaults, YAML file, environment).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Forkful server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Cache    CacheConfig    `koanf:"cache"`
	Trending TrendingConfig `koanf:"trending"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	// Path is the database file location; ":memory:" runs fully in-memory.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB worker thread count; 0 uses runtime.NumCPU().
	Threads      int  `koanf:"threads"`
	SeedMockData bool `koanf:"seed_mock_data"`
}

// APIConfig bounds discovery pagination.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// CacheConfig configures the in-process result cache.
type CacheConfig struct {
	// ListTTL bounds the age of cached discovery listings.
	ListTTL time.Duration `koanf:"list_ttl"`
	// TrendingTTL bounds the age of cached trending snapshots.
	TrendingTTL time.Duration `koanf:"trending_ttl"`
	// SweepInterval is the period of the background expiry sweep;
	// 0 disables the sweeper (stale entries are still evicted on read).
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// TrendingConfig configures the trending ranker.
type TrendingConfig struct {
	// WindowDays is the trailing candidate window. Recipes older than
	// this never trend regardless of like count.
	WindowDays   int `koanf:"window_days"`
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// SecurityConfig configures rate limiting and CORS.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:         "/data/forkful.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			SeedMockData: false,
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     50,
		},
		Cache: CacheConfig{
			ListTTL:       2 * time.Minute,
			TrendingTTL:   10 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Trending: TrendingConfig{
			WindowDays:   30,
			DefaultLimit: 5,
			MaxLimit:     20,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks invariants the rest of the process relies on.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.Trending.WindowDays < 1 {
		return fmt.Errorf("trending.window_days must be >= 1, got %d", c.Trending.WindowDays)
	}
	if c.Trending.DefaultLimit < 1 || c.Trending.DefaultLimit > c.Trending.MaxLimit {
		return fmt.Errorf("trending.default_limit must be in [1, %d], got %d",
			c.Trending.MaxLimit, c.Trending.DefaultLimit)
	}
	if c.Cache.ListTTL <= 0 || c.Cache.TrendingTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}
