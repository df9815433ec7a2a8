// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/logging"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/models"
)

// Cache key namespaces. Listing keys look like "recipes:<hash>" and
// trending keys like "trending:<hash>", which is what the invalidation
// pattern below matches.
const (
	cacheNamespaceRecipes  = "recipes"
	cacheNamespaceTrending = "trending"
)

// recipeCachePattern invalidates every cached listing and trending
// snapshot. Mutations are rare relative to reads, so wholesale
// invalidation beats tracking which pages a recipe appears on.
var recipeCachePattern = regexp.MustCompile(`^(recipes|trending):`)

// RecipeStore is the persistence surface the recipe handlers need.
// *database.DB satisfies it.
type RecipeStore interface {
	discovery.RecipeStore
	discovery.TrendingStore
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, recipeID, userID string) (bool, int, error)
	ToggleFavorite(ctx context.Context, recipeID, userID string) (bool, error)
	FavoriteRecipes(ctx context.Context, userID string) ([]models.Recipe, error)
}

// UserStore is the persistence surface the user handlers need.
// *database.DB satisfies it.
type UserStore interface {
	discovery.AuthorLookup
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the HTTP handlers and their collaborators.
type Handlers struct {
	cfg     *config.Config
	recipes RecipeStore
	users   UserStore
	cache   *cache.Cache
	pinger  Pinger

	executor *discovery.Executor
	ranker   *discovery.Ranker
	bounds   discovery.PageBounds
}

// NewHandlers wires the handler set over the given stores. The discovery
// executor and trending ranker are constructed here so every caller gets
// the same configured pipeline.
func NewHandlers(cfg *config.Config, recipes RecipeStore, users UserStore, c *cache.Cache, pinger Pinger) *Handlers {
	bounds := discovery.PageBounds{
		DefaultLimit: cfg.API.DefaultPageSize,
		MaxLimit:     cfg.API.MaxPageSize,
	}
	rankerCfg := discovery.RankerConfig{
		WindowDays:   cfg.Trending.WindowDays,
		DefaultLimit: cfg.Trending.DefaultLimit,
		MaxLimit:     cfg.Trending.MaxLimit,
	}

	return &Handlers{
		cfg:      cfg,
		recipes:  recipes,
		users:    users,
		cache:    c,
		pinger:   pinger,
		executor: discovery.NewExecutor(recipes, users),
		ranker:   discovery.NewRanker(recipes, users, rankerCfg),
		bounds:   bounds,
	}
}

// Ranker exposes the trending ranker, mainly so tests can pin its clock.
func (h *Handlers) Ranker() *discovery.Ranker {
	return h.ranker
}

// serveCached writes the cached response for key if present and fresh
// enough, and reports whether it did. The TTL is supplied per read; the
// same entry can be fresh for one caller and stale for another.
func (h *Handlers) serveCached(w http.ResponseWriter, namespace, key string, ttl time.Duration) bool {
	var cached models.APIResponse
	if !h.cache.Get(key, ttl, &cached) {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(namespace).Inc()
	w.Header().Set("X-Cache", "HIT")
	respondJSON(w, http.StatusOK, &cached)
	return true
}

// cacheAndRespond stores the response and writes it. Cache failures are
// logged and ignored; the client still gets its response.
func (h *Handlers) cacheAndRespond(w http.ResponseWriter, key string, response *models.APIResponse) {
	if err := h.cache.Set(key, response); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Failed to cache response")
	}
	w.Header().Set("X-Cache", "MISS")
	respondJSON(w, http.StatusOK, response)
}

// invalidateRecipeCaches drops every cached listing and trending
// snapshot after a mutation.
func (h *Handlers) invalidateRecipeCaches() {
	removed := h.cache.Invalidate(recipeCachePattern)
	if removed > 0 {
		logging.Debug().Int("removed", removed).Msg("Invalidated recipe caches")
	}
}
