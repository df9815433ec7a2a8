// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"net/http"
	"time"

	"github.com/forkful/forkful/internal/models"
)

// Health handles GET /api/v1/health. Degraded storage reports 503 so
// load balancers stop routing here, but the process keeps serving
// whatever the cache still holds.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, &models.APIResponse{
		Success: code == http.StatusOK,
		Data: map[string]interface{}{
			"status":    status,
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// HealthLive handles GET /api/v1/health/live: process liveness only,
// no dependency checks.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    map[string]string{"status": "ok"},
	})
}

// HealthReady handles GET /api/v1/health/ready: readiness including the
// storage dependency.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handlers) CacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    h.cache.Stats(),
	})
}

// RecipeMetadata handles GET /api/v1/recipes/metadata: the closed
// category and difficulty vocabularies clients build pickers from.
func (h *Handlers) RecipeMetadata(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data: map[string][]string{
			"categories":   models.Categories(),
			"difficulties": models.Difficulties(),
		},
	})
}
