// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package discovery

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/forkful/forkful/internal/models"
)

// TrendingStore is the persistence collaborator the ranker draws
// candidates from.
type TrendingStore interface {
	// FetchRecentWithLikeCounts returns (id, likeCount, createdAt) for
	// every recipe created at or after since.
	FetchRecentWithLikeCounts(ctx context.Context, since time.Time) ([]models.RecipeActivity, error)

	// RecipesByIDs materializes full recipes for the given IDs, in any
	// order. Unknown IDs are silently absent from the result.
	RecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error)
}

// RankerConfig bounds the trending computation.
type RankerConfig struct {
	// WindowDays is the trailing candidate window in days. Recipes
	// older than the window never trend regardless of like count.
	WindowDays int

	// DefaultLimit is the top-K size when the caller supplies none.
	DefaultLimit int

	// MaxLimit caps the top-K size.
	MaxLimit int
}

// DefaultRankerConfig returns the standard 30-day window with top-5
// output capped at 20.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{WindowDays: 30, DefaultLimit: 5, MaxLimit: 20}
}

// Ranker computes the top-K recipes by recency-decayed popularity.
//
// The score rewards recipes that accumulate likes quickly: a recipe
// with 10 likes at 1 day old (score 10) outranks one with 20 likes at
// 5 days old (score 4). Ties break deterministically by createdAt
// descending, then ID ascending, so repeated calls over the same input
// always produce the same order.
type Ranker struct {
	store   TrendingStore
	authors AuthorLookup
	cfg     RankerConfig

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewRanker creates a ranker over the given collaborators. Zero or
// negative config fields take the defaults.
func NewRanker(store TrendingStore, authors AuthorLookup, cfg RankerConfig) *Ranker {
	def := DefaultRankerConfig()
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = def.WindowDays
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}

	return &Ranker{
		store:   store,
		authors: authors,
		cfg:     cfg,
		now:     time.Now,
	}
}

// SetClock replaces the ranker's time source. Intended for tests.
func (r *Ranker) SetClock(now func() time.Time) {
	r.now = now
}

// NormalizeLimit parses a raw limit parameter the same permissive way
// pagination input is handled: missing, non-numeric, or non-positive
// values take the default; oversized values clamp to the maximum.
func (r *Ranker) NormalizeLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return r.cfg.DefaultLimit
	}
	if limit > r.cfg.MaxLimit {
		return r.cfg.MaxLimit
	}
	return limit
}

// Score computes the trending score for a candidate with the given like
// count and age. Age at or below zero scores the raw like count;
// otherwise the count is divided by the age in fractional days.
func Score(likeCount int, age time.Duration) float64 {
	days := age.Hours() / 24
	if days <= 0 {
		return float64(likeCount)
	}
	return float64(likeCount) / days
}

// scoredCandidate pairs an activity row with its computed score.
type scoredCandidate struct {
	models.RecipeActivity
	score float64
}

// Trending returns the top limit recipes by score, enriched with author
// summaries. An empty candidate window yields an empty slice, not an
// error.
func (r *Ranker) Trending(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit < 1 {
		limit = r.cfg.DefaultLimit
	}

	now := r.now()
	since := now.AddDate(0, 0, -r.cfg.WindowDays)

	activities, err := r.store.FetchRecentWithLikeCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("discovery: fetch trending candidates: %w", err)
	}
	if len(activities) == 0 {
		return []models.Recipe{}, nil
	}

	scored := make([]scoredCandidate, 0, len(activities))
	for _, a := range activities {
		scored = append(scored, scoredCandidate{
			RecipeActivity: a,
			score:          Score(a.LikeCount, now.Sub(a.CreatedAt)),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if !scored[i].CreatedAt.Equal(scored[j].CreatedAt) {
			return scored[i].CreatedAt.After(scored[j].CreatedAt)
		}
		return scored[i].RecipeID < scored[j].RecipeID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	ids := make([]string, len(scored))
	for i, s := range scored {
		ids[i] = s.RecipeID
	}

	recipes, err := r.store.RecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("discovery: materialize trending recipes: %w", err)
	}

	// Restore rank order; RecipesByIDs makes no ordering promise.
	byID := make(map[string]models.Recipe, len(recipes))
	for _, rec := range recipes {
		byID[rec.ID] = rec
	}
	ordered := make([]models.Recipe, 0, len(scored))
	for _, s := range scored {
		if rec, ok := byID[s.RecipeID]; ok {
			ordered = append(ordered, rec)
		}
	}

	if err := EnrichAuthors(ctx, r.authors, ordered); err != nil {
		return nil, err
	}
	return ordered, nil
}
