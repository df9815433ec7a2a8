// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/models"
)

// RegisterUserRequest is the payload for account registration.
type RegisterUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
}

// UpdateUserRequest is the payload for profile updates. Credentials are
// not editable through this endpoint.
type UpdateUserRequest struct {
	FirstName      string `json:"firstName" validate:"omitempty,max=50"`
	LastName       string `json:"lastName" validate:"omitempty,max=50"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
	Bio            string `json:"bio" validate:"omitempty,max=500"`
}

// RegisterUser handles POST /api/v1/users.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to process credentials", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := h.users.CreateUser(r.Context(), user); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Success: true,
		Data:    user,
	})
}

// GetUser handles GET /api/v1/users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "user id", id) {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    user,
	})
}

// UpdateUser handles PUT /api/v1/users/{id}.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "user id", id) {
		return
	}

	var req UpdateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.ProfilePicture = req.ProfilePicture
	user.Bio = req.Bio

	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    user,
	})
}

// UserRecipes handles GET /api/v1/users/{id}/recipes. It is the
// standard discovery pipeline with the author filter pinned, so the
// usual pagination and sort parameters apply.
func (h *Handlers) UserRecipes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "user id", id) {
		return
	}

	query := r.URL.Query()
	filter := discovery.ParseFilterParams(query)
	filter.AuthorID = id
	pagination := discovery.ParsePaginationParams(query, h.bounds)

	page, err := h.executor.Execute(r.Context(), filter, pagination)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
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
	})
}

// UserFavorites handles GET /api/v1/users/{id}/favorites.
func (h *Handlers) UserFavorites(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !requireUUIDParam(w, "user id", id) {
		return
	}

	recipes, err := h.recipes.FavoriteRecipes(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := discovery.EnrichAuthors(r.Context(), h.users, recipes); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    recipes,
	})
}
