// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/models"
)

// fakeTrendingStore serves a fixed activity window and recipe set.
type fakeTrendingStore struct {
	activities []models.RecipeActivity
	recipes    map[string]models.Recipe
	err        error
}

func (s *fakeTrendingStore) FetchRecentWithLikeCounts(_ context.Context, since time.Time) ([]models.RecipeActivity, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.RecipeActivity
	for _, a := range s.activities {
		if !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeTrendingStore) RecipesByIDs(_ context.Context, ids []string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, id := range ids {
		if r, ok := s.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestRanker(store *fakeTrendingStore, now time.Time) *Ranker {
	r := NewRanker(store, &fakeAuthors{}, DefaultRankerConfig())
	r.SetClock(func() time.Time { return now })
	return r
}

func activity(id string, likes int, createdAt time.Time) models.RecipeActivity {
	return models.RecipeActivity{RecipeID: id, LikeCount: likes, CreatedAt: createdAt}
}

func recipeFor(a models.RecipeActivity) models.Recipe {
	return models.Recipe{ID: a.RecipeID, Title: "Recipe " + a.RecipeID, AuthorID: "author-1",
		LikeCount: a.LikeCount, CreatedAt: a.CreatedAt}
}

func storeFor(activities ...models.RecipeActivity) *fakeTrendingStore {
	s := &fakeTrendingStore{activities: activities, recipes: map[string]models.Recipe{}}
	for _, a := range activities {
		s.recipes[a.RecipeID] = recipeFor(a)
	}
	return s
}

func TestScoreFormula(t *testing.T) {
	day := 24 * time.Hour

	// 10 likes at 1 day scores 10; 20 likes at 5 days scores 4.
	if got := Score(10, day); got != 10 {
		t.Errorf("Expected score 10, got %v", got)
	}
	if got := Score(20, 5*day); got != 4 {
		t.Errorf("Expected score 4, got %v", got)
	}

	// Age zero scores the raw like count.
	if got := Score(7, 0); got != 7 {
		t.Errorf("Expected raw like count at age zero, got %v", got)
	}

	// Fractional days: 3 likes at half a day scores 6.
	if got := Score(3, 12*time.Hour); got != 6 {
		t.Errorf("Expected score 6 at half a day, got %v", got)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	day := 24 * time.Hour

	// Non-increasing in age for fixed like count.
	prev := Score(50, day)
	for ageDays := 2; ageDays <= 30; ageDays++ {
		cur := Score(50, time.Duration(ageDays)*day)
		if cur > prev {
			t.Fatalf("Score increased with age at %d days: %v > %v", ageDays, cur, prev)
		}
		prev = cur
	}

	// Increasing in like count for fixed age.
	prev = Score(0, 3*day)
	for likes := 1; likes <= 100; likes += 7 {
		cur := Score(likes, 3*day)
		if cur <= prev {
			t.Fatalf("Score did not increase with likes at %d: %v <= %v", likes, cur, prev)
		}
		prev = cur
	}
}

func TestTrendingVelocityBeatsVolume(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	// Recipe A: 10 likes, 2 days old, score 5.
	// Recipe B: 3 likes, half a day old, score 6.
	store := storeFor(
		activity("a", 10, now.Add(-48*time.Hour)),
		activity("b", 3, now.Add(-12*time.Hour)),
	)
	ranker := newTestRanker(store, now)

	got, err := ranker.Trending(context.Background(), 2)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("Expected order [b a], got [%s %s]", got[0].ID, got[1].ID)
	}
	if got[0].Author == nil {
		t.Error("Expected author enrichment on trending output")
	}
}

func TestTrendingWindowExcludesOldRecipes(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := storeFor(
		activity("ancient", 10000, now.AddDate(0, 0, -31)),
		activity("recent", 1, now.AddDate(0, 0, -1)),
	)
	ranker := newTestRanker(store, now)

	got, err := ranker.Trending(context.Background(), 5)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "recent" {
		t.Errorf("Expected only the recent recipe, got %v", got)
	}
}

func TestTrendingEmptyWindow(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := storeFor(activity("old", 50, now.AddDate(0, 0, -45)))
	ranker := newTestRanker(store, now)

	got, err := ranker.Trending(context.Background(), 5)
	if err != nil {
		t.Fatalf("Empty window must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %d", len(got))
	}
}

func TestTrendingLimitsOutput(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	var activities []models.RecipeActivity
	for i := 0; i < 10; i++ {
		activities = append(activities,
			activity(string(rune('a'+i)), 10+i, now.Add(-time.Duration(i+1)*time.Hour)))
	}
	ranker := newTestRanker(storeFor(activities...), now)

	got, err := ranker.Trending(context.Background(), 3)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected top 3, got %d", len(got))
	}
}

func TestTrendingDeterministicTieBreak(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	sameTime := now.Add(-24 * time.Hour)
	// Identical scores and createdAt: order falls back to ID ascending.
	store := storeFor(
		activity("charlie", 5, sameTime),
		activity("alpha", 5, sameTime),
		activity("bravo", 5, sameTime),
	)
	ranker := newTestRanker(store, now)

	for run := 0; run < 5; run++ {
		got, err := ranker.Trending(context.Background(), 3)
		if err != nil {
			t.Fatalf("Trending failed: %v", err)
		}
		if got[0].ID != "alpha" || got[1].ID != "bravo" || got[2].ID != "charlie" {
			t.Fatalf("run %d: expected stable [alpha bravo charlie], got [%s %s %s]",
				run, got[0].ID, got[1].ID, got[2].ID)
		}
	}
}

func TestTrendingEqualScoreNewerFirst(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	// Same score 5: 5 likes at 1 day vs 10 likes at 2 days.
	store := storeFor(
		activity("older", 10, now.Add(-48*time.Hour)),
		activity("newer", 5, now.Add(-24*time.Hour)),
	)
	ranker := newTestRanker(store, now)

	got, err := ranker.Trending(context.Background(), 2)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if got[0].ID != "newer" {
		t.Errorf("Expected newer recipe first on equal score, got %s", got[0].ID)
	}
}

func TestNormalizeLimit(t *testing.T) {
	ranker := NewRanker(storeFor(), &fakeAuthors{}, DefaultRankerConfig())

	tests := []struct {
		raw      string
		expected int
	}{
		{"", 5},
		{"abc", 5},
		{"0", 5},
		{"-3", 5},
		{"8", 8},
		{"100", 20},
	}
	for _, tt := range tests {
		if got := ranker.NormalizeLimit(tt.raw); got != tt.expected {
			t.Errorf("NormalizeLimit(%q): expected %d, got %d", tt.raw, tt.expected, got)
		}
	}
}

func TestTrendingStoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("aggregation failed")
	store := &fakeTrendingStore{err: storeErr}
	ranker := newTestRanker(store, time.Now())

	_, err := ranker.Trending(context.Background(), 5)
	if !errors.Is(err, storeErr) {
		t.Errorf("Expected wrapped store error, got %v", err)
	}
}
