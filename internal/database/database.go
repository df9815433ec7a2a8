// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/logging"
)

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New creates a new database connection and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted
	// network environments; no extensions are needed.
	connStr := fmt.Sprintf(
		"%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory,
	)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(numThreads)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.initSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if cfg.SeedMockData {
		if err := db.seedMockData(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to seed mock data")
		}
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("Database initialized")
	return db, nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates tables and indexes if they do not exist.
//
// The CHECK constraints are the storage-boundary enum validation the
// upper layers rely on: category, difficulty, preparation time, and
// servings can never be persisted outside their invariants.
func (db *DB) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              UUID PRIMARY KEY,
			username        TEXT NOT NULL UNIQUE,
			email           TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			first_name      TEXT NOT NULL DEFAULT '',
			last_name       TEXT NOT NULL DEFAULT '',
			profile_picture TEXT NOT NULL DEFAULT '',
			bio             TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id                UUID PRIMARY KEY,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL,
			ingredients       TEXT NOT NULL DEFAULT '[]',
			instructions      TEXT NOT NULL DEFAULT '[]',
			category          TEXT NOT NULL CHECK (category IN (
				'breakfast','lunch','dinner','dessert','snack','appetizer','beverage','other')),
			difficulty        TEXT NOT NULL CHECK (difficulty IN ('easy','medium','hard')),
			prep_time_minutes INTEGER NOT NULL CHECK (prep_time_minutes >= 1),
			servings          INTEGER NOT NULL CHECK (servings >= 1),
			image_url         TEXT NOT NULL DEFAULT '',
			author_id         UUID NOT NULL,
			like_count        INTEGER NOT NULL DEFAULT 0,
			created_at        TIMESTAMP NOT NULL,
			updated_at        TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			recipe_id  UUID NOT NULL,
			user_id    UUID NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (recipe_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			recipe_id  UUID NOT NULL,
			user_id    UUID NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (recipe_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes (category)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes (author_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
