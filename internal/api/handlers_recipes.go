// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/models"
)

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=150"`
	Description     string   `json:"description" validate:"required,max=2000"`
	Ingredients     []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions    []string `json:"instructions" validate:"required,min=1,dive,required"`
	Category        string   `json:"category" validate:"required,oneof=breakfast lunch dinner dessert snack appetizer beverage other"`
	Difficulty      string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	PreparationTime int      `json:"preparationTime" validate:"required,gte=1,lte=1440"`
	Servings        int      `json:"servings" validate:"required,gte=1,lte=100"`
	ImageURL        string   `json:"imageUrl" validate:"omitempty,url"`
	AuthorID        string   `json:"authorId" validate:"required,uuid4"`
}

// UpdateRecipeRequest is the payload for updating a recipe. The author
// and timestamps are immutable.
type UpdateRecipeRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=150"`
	Description     string   `json:"description" validate:"required,max=2000"`
	Ingredients     []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions    []string `json:"instructions" validate:"required,min=1,dive,required"`
	Category        string   `json:"category" validate:"required,oneof=breakfast lunch dinner dessert snack appetizer beverage other"`
	Difficulty      string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	PreparationTime int      `json:"preparationTime" validate:"required,gte=1,lte=1440"`
	Servings        int      `json:"servings" validate:"required,gte=1,lte=100"`
	ImageURL        string   `json:"imageUrl" validate:"omitempty,url"`
}

// ToggleRequest identifies the acting user for like/favorite toggles.
type ToggleRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}

// listCacheParams is the cache key material for a recipe listing: the
// full normalized filter and pagination state. Two requests that
// normalize to the same specs share one cache entry.
type listCacheParams struct {
	Filter     discovery.FilterSpec
	Pagination discovery.PaginationSpec
}

// ListRecipes handles GET /api/v1/recipes.
//
// Filter and pagination parameters are parsed permissively: malformed
// values fall back to defaults rather than producing errors.
func (h *Handlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := discovery.ParseFilterParams(query)
	pagination := discovery.ParsePaginationParams(query, h.bounds)

	key := cache.GenerateKey(cacheNamespaceRecipes, listCacheParams{
		Filter:     filter,
		Pagination: pagination,
	})
	if h.serveCached(w, cacheNamespaceRecipes, key, h.cfg.Cache.ListTTL) {
		return
	}

	page, err := h.executor.Execute(r.Context(), filter, pagination)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	response := &models.APIResponse{
		Success: true,
		Data:    page.Items,
		Pagination: &models.Pagination{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   page.TotalItems,
			Pages:   page.TotalPages,
			HasNext: page.HasNext,
			HasPrev: page.HasPrev,
		},
	}
	h.cacheAndRespond(w, key, response)
}

// TrendingRecipes handles GET /api/v1/recipes/trending.
func (h *Handlers) TrendingRecipes(w http.ResponseWriter, r *http.Request) {
	limit := h.ranker.NormalizeLimit(r.URL.Query().Get("limit"))

	key := cache.GenerateKey(cacheNamespaceTrending, map[string]int{"limit": limit})
	if h.serveCached(w, cacheNamespaceTrending, key, h.cfg.Cache.TrendingTTL) {
		return
	}

	recipes, err := h.ranker.Trending(r.Context(), limit)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cacheAndRespond(w, key, &models.APIResponse{
		Success: true,
		Data:    recipes,
	})
}

// GetRecipe handles GET /api/v1/recipes/{id}.
func (h *Handlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "recipe id", id) {
		return
	}

	recipe, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	single := []models.Recipe{*recipe}
	if err := discovery.EnrichAuthors(r.Context(), h.users, single); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    single[0],
	})
}

// CreateRecipe handles POST /api/v1/recipes.
func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	recipe := &models.Recipe{
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		PreparationTime: req.PreparationTime,
		Servings:        req.Servings,
		ImageURL:        req.ImageURL,
		AuthorID:        req.AuthorID,
	}

	if err := h.recipes.CreateRecipe(r.Context(), recipe); err != nil {
		respondStoreError(w, err)
		return
	}

	metrics.RecipesCreated.Inc()
	h.invalidateRecipeCaches()

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}.
func (h *Handlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "recipe id", id) {
		return
	}

	var req UpdateRecipeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	recipe, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.Category = req.Category
	recipe.Difficulty = req.Difficulty
	recipe.PreparationTime = req.PreparationTime
	recipe.Servings = req.Servings
	recipe.ImageURL = req.ImageURL

	if err := h.recipes.UpdateRecipe(r.Context(), recipe); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateRecipeCaches()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}.
func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "recipe id", id) {
		return
	}

	if err := h.recipes.DeleteRecipe(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateRecipeCaches()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    map[string]string{"deleted": id},
	})
}

// ToggleLike handles POST /api/v1/recipes/{id}/like. The same request
// likes an unliked recipe and unlikes a liked one.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "recipe id", id) {
		return
	}

	var req ToggleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	liked, count, err := h.recipes.ToggleLike(r.Context(), id, req.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	metrics.LikesToggled.WithLabelValues(state).Inc()

	// Like counts feed trending scores and the likes sort, so cached
	// listings are stale the moment the toggle commits.
	h.invalidateRecipeCaches()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"liked":     liked,
			"likeCount": count,
		},
	})
}

// ToggleFavorite handles POST /api/v1/recipes/{id}/favorite.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "recipe id", id) {
		return
	}

	var req ToggleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	favorited, err := h.recipes.ToggleFavorite(r.Context(), id, req.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	// Favorites are private and never ranked, so no invalidation.
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    map[string]bool{"favorited": favorited},
	})
}
