// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/models"
)

// recipeColumns is the canonical select list for recipe rows. scanRecipe
// must stay in sync with it.
const recipeColumns = `id, title, description, ingredients, instructions,
	category, difficulty, prep_time_minutes, servings, image_url,
	author_id, like_count, created_at, updated_at`

// recipeColumnsQualified is recipeColumns with an "r." prefix for joined
// queries where column names would otherwise be ambiguous.
const recipeColumnsQualified = `r.id, r.title, r.description, r.ingredients, r.instructions,
	r.category, r.difficulty, r.prep_time_minutes, r.servings, r.image_url,
	r.author_id, r.like_count, r.created_at, r.updated_at`

// CountAndFetch runs the count and fetch queries for one discovery page:
// a count(*) over the filtered set, then a page slice ordered by the
// requested sort column with id as the deterministic secondary key.
//
// It satisfies discovery.RecipeStore.
func (db *DB) CountAndFetch(ctx context.Context, f discovery.FilterSpec, sort discovery.SortField, descending bool, skip, limit int) ([]models.Recipe, int, error) {
	whereClause, args := buildFilterWhereClause(f)

	var total int
	countQuery := "SELECT count(*) FROM recipes WHERE " + whereClause
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	if total == 0 {
		return []models.Recipe{}, 0, nil
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	fetchQuery := fmt.Sprintf(
		"SELECT %s FROM recipes WHERE %s ORDER BY %s %s, id ASC LIMIT ? OFFSET ?",
		recipeColumns, whereClause, sortColumn(sort), direction,
	)
	fetchArgs := append(args, limit, skip)

	rows, err := db.conn.QueryContext(ctx, fetchQuery, fetchArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer closeWithLog(rows, "recipe fetch rows")

	recipes, err := scanRecipes(rows)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// GetRecipe returns a single recipe by ID, or ErrNotFound.
func (db *DB) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	query := fmt.Sprintf("SELECT %s FROM recipes WHERE id = ?", recipeColumns)
	row := db.conn.QueryRowContext(ctx, query, id)

	recipe, err := scanRecipeRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return recipe, nil
}

// RecipesByIDs loads full recipe rows for the given IDs. The result order
// is unspecified; callers that need a particular order reorder by ID.
// Missing IDs are silently absent from the result.
func (db *DB) RecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT %s FROM recipes WHERE id IN (%s)",
		recipeColumns, strings.Join(placeholders, ", "),
	)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes by ids: %w", err)
	}
	defer closeWithLog(rows, "recipes by ids rows")

	return scanRecipes(rows)
}

// FetchRecentWithLikeCounts returns the activity projection for every
// recipe created at or after the given instant. It satisfies
// discovery.TrendingStore together with RecipesByIDs.
func (db *DB) FetchRecentWithLikeCounts(ctx context.Context, since time.Time) ([]models.RecipeActivity, error) {
	query := `SELECT id, like_count, created_at FROM recipes WHERE created_at >= ?`

	rows, err := db.conn.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent recipe activity: %w", err)
	}
	defer closeWithLog(rows, "recipe activity rows")

	activity := []models.RecipeActivity{}
	for rows.Next() {
		var a models.RecipeActivity
		if err := rows.Scan(&a.RecipeID, &a.LikeCount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe activity: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recipe activity rows: %w", err)
	}
	return activity, nil
}

// CreateRecipe inserts a new recipe. ID, timestamps, and the zero like
// count are assigned here; the caller provides everything else.
func (db *DB) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = uuid.NewString()
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	recipe.LikeCount = 0

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("failed to encode instructions: %w", err)
	}

	query := `INSERT INTO recipes (
		id, title, description, ingredients, instructions,
		category, difficulty, prep_time_minutes, servings, image_url,
		author_id, like_count, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = db.conn.ExecContext(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, string(ingredients), string(instructions),
		recipe.Category, recipe.Difficulty, recipe.PreparationTime, recipe.Servings, recipe.ImageURL,
		recipe.AuthorID, recipe.LikeCount, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// UpdateRecipe overwrites the editable fields of an existing recipe and
// bumps updated_at. Returns ErrNotFound when the recipe does not exist.
func (db *DB) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("failed to encode instructions: %w", err)
	}

	query := `UPDATE recipes SET
		title = ?, description = ?, ingredients = ?, instructions = ?,
		category = ?, difficulty = ?, prep_time_minutes = ?, servings = ?,
		image_url = ?, updated_at = ?
	WHERE id = ?`

	result, err := db.conn.ExecContext(ctx, query,
		recipe.Title, recipe.Description, string(ingredients), string(instructions),
		recipe.Category, recipe.Difficulty, recipe.PreparationTime, recipe.Servings,
		recipe.ImageURL, recipe.UpdatedAt, recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe and its like/favorite rows. Returns
// ErrNotFound when the recipe does not exist.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	result, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE recipe_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete likes for recipe %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE recipe_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete favorites for recipe %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe delete: %w", err)
	}
	return nil
}

// ToggleLike adds or removes a like for (recipeID, userID) and keeps the
// denormalized like_count in step, all in one transaction. The returned
// values are the liked-after state and the new like count. Returns
// ErrNotFound when the recipe does not exist.
func (db *DB) ToggleLike(ctx context.Context, recipeID, userID string) (bool, int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var existing int
	err = tx.QueryRowContext(ctx,
		"SELECT count(*) FROM likes WHERE recipe_id = ? AND user_id = ?",
		recipeID, userID,
	).Scan(&existing)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check like state: %w", err)
	}

	liked := existing == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO likes (recipe_id, user_id, created_at) VALUES (?, ?, ?)",
			recipeID, userID, time.Now().UTC(),
		)
		if err != nil {
			return false, 0, fmt.Errorf("failed to insert like: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM likes WHERE recipe_id = ? AND user_id = ?",
			recipeID, userID,
		)
		if err != nil {
			return false, 0, fmt.Errorf("failed to delete like: %w", err)
		}
	}

	delta := -1
	if liked {
		delta = 1
	}
	result, err := tx.ExecContext(ctx,
		"UPDATE recipes SET like_count = like_count + ? WHERE id = ?",
		delta, recipeID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to update like count: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read like count result: %w", err)
	}
	if affected == 0 {
		return false, 0, ErrNotFound
	}

	var count int
	err = tx.QueryRowContext(ctx, "SELECT like_count FROM recipes WHERE id = ?", recipeID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("failed to read like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit like toggle: %w", err)
	}
	return liked, count, nil
}

// ToggleFavorite adds or removes a favorite for (recipeID, userID) and
// reports the favorited-after state. Favorites are private bookmarks,
// so nothing is denormalized onto the recipe row. Returns ErrNotFound
// when the recipe does not exist.
func (db *DB) ToggleFavorite(ctx context.Context, recipeID, userID string) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin favorite transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var recipeExists int
	err = tx.QueryRowContext(ctx, "SELECT count(*) FROM recipes WHERE id = ?", recipeID).Scan(&recipeExists)
	if err != nil {
		return false, fmt.Errorf("failed to check recipe existence: %w", err)
	}
	if recipeExists == 0 {
		return false, ErrNotFound
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		"SELECT count(*) FROM favorites WHERE recipe_id = ? AND user_id = ?",
		recipeID, userID,
	).Scan(&existing)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite state: %w", err)
	}

	favorited := existing == 0
	if favorited {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO favorites (recipe_id, user_id, created_at) VALUES (?, ?, ?)",
			recipeID, userID, time.Now().UTC(),
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert favorite: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM favorites WHERE recipe_id = ? AND user_id = ?",
			recipeID, userID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to delete favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit favorite toggle: %w", err)
	}
	return favorited, nil
}

// FavoriteRecipes returns the recipes a user has bookmarked, newest
// bookmark first.
func (db *DB) FavoriteRecipes(ctx context.Context, userID string) ([]models.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes r
		JOIN favorites f ON f.recipe_id = r.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, r.id ASC`,
		recipeColumnsQualified)

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites for user %s: %w", userID, err)
	}
	defer closeWithLog(rows, "favorite recipes rows")

	return scanRecipes(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows for recipe scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipeRow(row rowScanner) (*models.Recipe, error) {
	var r models.Recipe
	var ingredients, instructions string

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &ingredients, &instructions,
		&r.Category, &r.Difficulty, &r.PreparationTime, &r.Servings, &r.ImageURL,
		&r.AuthorID, &r.LikeCount, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients for recipe %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(instructions), &r.Instructions); err != nil {
		return nil, fmt.Errorf("failed to decode instructions for recipe %s: %w", r.ID, err)
	}
	return &r, nil
}

func scanRecipes(rows *sql.Rows) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recipe rows: %w", err)
	}
	return recipes, nil
}
