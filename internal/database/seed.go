// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful/forkful/internal/logging"
	"github.com/forkful/forkful/internal/models"
)

// seedMockData populates an empty database with demo users and recipes
// for local development. It is a no-op when any user already exists, so
// restarts do not duplicate data.
func (db *DB) seedMockData(ctx context.Context) error {
	var userCount int
	if err := db.conn.QueryRowContext(ctx, "SELECT count(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if userCount > 0 {
		logging.Debug().Msg("Database already seeded, skipping mock data")
		return nil
	}

	// bcrypt hash of "forkful-demo"; demo accounts share one password.
	const demoHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	users := []models.User{
		{Username: "mariab", Email: "maria@example.com", PasswordHash: demoHash, FirstName: "Maria", LastName: "Bell"},
		{Username: "kenji_t", Email: "kenji@example.com", PasswordHash: demoHash, FirstName: "Kenji", LastName: "Tanaka"},
		{Username: "sofia.r", Email: "sofia@example.com", PasswordHash: demoHash, FirstName: "Sofia", LastName: "Reyes", Bio: "Weeknight cooking, mostly one pot."},
	}
	for i := range users {
		if err := db.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Username, err)
		}
	}

	now := time.Now().UTC()
	recipes := []struct {
		recipe models.Recipe
		age    time.Duration
		likes  int
	}{
		{
			recipe: models.Recipe{
				Title:           "Shakshuka",
				Description:     "Eggs poached in a spiced tomato and pepper sauce.",
				Ingredients:     []string{"6 eggs", "800g canned tomatoes", "2 red peppers", "1 onion", "2 tsp smoked paprika", "1 tsp cumin"},
				Instructions:    []string{"Soften the onion and peppers.", "Add spices and tomatoes, simmer 10 minutes.", "Make wells, crack in the eggs, cover until just set."},
				Category:        models.CategoryBreakfast,
				Difficulty:      models.DifficultyEasy,
				PreparationTime: 30,
				Servings:        3,
				AuthorID:        users[0].ID,
			},
			age:   36 * time.Hour,
			likes: 14,
		},
		{
			recipe: models.Recipe{
				Title:           "Miso Ramen",
				Description:     "Rich miso broth with chashu pork and soft eggs.",
				Ingredients:     []string{"4 portions ramen noodles", "1.5L chicken stock", "4 tbsp miso paste", "400g pork belly", "4 eggs", "2 spring onions"},
				Instructions:    []string{"Braise the pork belly.", "Whisk miso into hot stock.", "Cook noodles, assemble bowls, top with pork, egg, and spring onion."},
				Category:        models.CategoryDinner,
				Difficulty:      models.DifficultyHard,
				PreparationTime: 150,
				Servings:        4,
				AuthorID:        users[1].ID,
			},
			age:   5 * 24 * time.Hour,
			likes: 42,
		},
		{
			recipe: models.Recipe{
				Title:           "One-Pot Chickpea Curry",
				Description:     "Coconut chickpea curry ready in under half an hour.",
				Ingredients:     []string{"2 cans chickpeas", "1 can coconut milk", "1 onion", "3 cloves garlic", "2 tbsp curry powder", "200g spinach"},
				Instructions:    []string{"Fry onion and garlic.", "Stir in curry powder, chickpeas, and coconut milk.", "Simmer 15 minutes, wilt in the spinach."},
				Category:        models.CategoryDinner,
				Difficulty:      models.DifficultyEasy,
				PreparationTime: 25,
				Servings:        4,
				AuthorID:        users[2].ID,
			},
			age:   6 * time.Hour,
			likes: 9,
		},
		{
			recipe: models.Recipe{
				Title:           "Basque Cheesecake",
				Description:     "Burnt-top crustless cheesecake with a custardy center.",
				Ingredients:     []string{"900g cream cheese", "300g sugar", "6 eggs", "500ml heavy cream", "30g flour"},
				Instructions:    []string{"Beat cheese and sugar smooth.", "Add eggs one at a time, then cream and flour.", "Bake hot until deeply browned but still wobbly."},
				Category:        models.CategoryDessert,
				Difficulty:      models.DifficultyMedium,
				PreparationTime: 75,
				Servings:        10,
				AuthorID:        users[0].ID,
			},
			age:   20 * 24 * time.Hour,
			likes: 67,
		},
	}

	for i := range recipes {
		r := &recipes[i].recipe
		if err := db.CreateRecipe(ctx, r); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", r.Title, err)
		}
		// Backdate and pre-like so discovery and trending have a
		// realistic spread to work with.
		createdAt := now.Add(-recipes[i].age)
		_, err := db.conn.ExecContext(ctx,
			"UPDATE recipes SET created_at = ?, updated_at = ?, like_count = ? WHERE id = ?",
			createdAt, createdAt, recipes[i].likes, r.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to backdate seed recipe %q: %w", r.Title, err)
		}
	}

	logging.Info().Int("users", len(users)).Int("recipes", len(recipes)).Msg("Seeded mock data")
	return nil
}
