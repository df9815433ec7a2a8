// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/logging"
	"github.com/forkful/forkful/internal/models"
)

// BreakerRecipeStore wraps a RecipeStore with a circuit breaker so a
// struggling storage layer sheds load instead of queueing requests.
// When open, calls fail fast with gobreaker.ErrOpenState, which the
// handlers translate to 503 SERVICE_UNAVAILABLE.
//
// The breaker uses real time for its interval and timeout; tests
// exercise the wrapped store directly.
type BreakerRecipeStore struct {
	store RecipeStore
	cb    *gobreaker.CircuitBreaker[any]
}

// NewBreakerRecipeStore wraps the store with a breaker that opens after
// a 60% failure rate over at least 10 requests and retries after 30
// seconds.
func NewBreakerRecipeStore(store RecipeStore) *BreakerRecipeStore {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "recipe-store",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Domain outcomes are not storage failures: a 404 or duplicate
		// username must never open the circuit.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, database.ErrNotFound) ||
				errors.Is(err, database.ErrDuplicate) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
		},
	})
	return &BreakerRecipeStore{store: store, cb: cb}
}

// execute runs fn through the breaker, discarding the placeholder value.
func (b *BreakerRecipeStore) execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}

func (b *BreakerRecipeStore) CountAndFetch(ctx context.Context, f discovery.FilterSpec, sort discovery.SortField, descending bool, skip, limit int) ([]models.Recipe, int, error) {
	type result struct {
		recipes []models.Recipe
		total   int
	}
	v, err := b.execute(func() (any, error) {
		recipes, total, err := b.store.CountAndFetch(ctx, f, sort, descending, skip, limit)
		return result{recipes, total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	res := v.(result)
	return res.recipes, res.total, nil
}

func (b *BreakerRecipeStore) FetchRecentWithLikeCounts(ctx context.Context, since time.Time) ([]models.RecipeActivity, error) {
	v, err := b.execute(func() (any, error) {
		return b.store.FetchRecentWithLikeCounts(ctx, since)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.RecipeActivity), nil
}

func (b *BreakerRecipeStore) RecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	v, err := b.execute(func() (any, error) {
		return b.store.RecipesByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Recipe), nil
}

func (b *BreakerRecipeStore) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	v, err := b.execute(func() (any, error) {
		return b.store.GetRecipe(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Recipe), nil
}

func (b *BreakerRecipeStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.store.CreateRecipe(ctx, recipe)
	})
	return err
}

func (b *BreakerRecipeStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.store.UpdateRecipe(ctx, recipe)
	})
	return err
}

func (b *BreakerRecipeStore) DeleteRecipe(ctx context.Context, id string) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.store.DeleteRecipe(ctx, id)
	})
	return err
}

func (b *BreakerRecipeStore) ToggleLike(ctx context.Context, recipeID, userID string) (bool, int, error) {
	type result struct {
		liked bool
		count int
	}
	v, err := b.execute(func() (any, error) {
		liked, count, err := b.store.ToggleLike(ctx, recipeID, userID)
		return result{liked, count}, err
	})
	if err != nil {
		return false, 0, err
	}
	res := v.(result)
	return res.liked, res.count, nil
}

func (b *BreakerRecipeStore) ToggleFavorite(ctx context.Context, recipeID, userID string) (bool, error) {
	v, err := b.execute(func() (any, error) {
		return b.store.ToggleFavorite(ctx, recipeID, userID)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (b *BreakerRecipeStore) FavoriteRecipes(ctx context.Context, userID string) ([]models.Recipe, error) {
	v, err := b.execute(func() (any, error) {
		return b.store.FavoriteRecipes(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Recipe), nil
}
