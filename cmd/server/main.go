// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

// Command server runs the Forkful API: recipe CRUD, discovery listings,
// trending, and user profiles over an embedded DuckDB store.
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

	"github.com/forkful/forkful/internal/api"
	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Forkful")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	resultCache := cache.New()
	defer resultCache.Stop()
	if cfg.Cache.SweepInterval > 0 {
		// Entries older than the longest read TTL can never be served
		// again, so the sweeper reclaims them.
		maxAge := cfg.Cache.ListTTL
		if cfg.Cache.TrendingTTL > maxAge {
			maxAge = cfg.Cache.TrendingTTL
		}
		resultCache.StartSweeper(cfg.Cache.SweepInterval, maxAge)
	}

	// All recipe reads and writes go through the circuit breaker so a
	// wedged storage layer degrades to fast 503s.
	recipeStore := api.NewBreakerRecipeStore(db)
	handlers := api.NewHandlers(cfg, recipeStore, db, resultCache, db)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, handlers),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
