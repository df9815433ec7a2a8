// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package models

import "time"

// Recipe categories. The set is closed: the persistence layer rejects any
// value outside this list with a CHECK constraint, so application code can
// treat a stored category as always valid.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDessert   = "dessert"
	CategorySnack     = "snack"
	CategoryAppetizer = "appetizer"
	CategoryBeverage  = "beverage"
	CategoryOther     = "other"
)

// Recipe difficulty levels, enforced at the storage boundary like categories.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Categories lists every valid recipe category.
func Categories() []string {
	return []string{
		CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryDessert,
		CategorySnack, CategoryAppetizer, CategoryBeverage, CategoryOther,
	}
}

// Difficulties lists every valid difficulty level.
func Difficulties() []string {
	return []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Recipe represents a published recipe as returned by the API.
//
// LikeCount is denormalized from the likes table and maintained by the
// persistence layer on every like toggle. PreparationTime is in minutes and
// is always >= 1 (CHECK constraint).
type Recipe struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Ingredients     []string       `json:"ingredients"`
	Instructions    []string       `json:"instructions"`
	Category        string         `json:"category"`
	Difficulty      string         `json:"difficulty"`
	PreparationTime int            `json:"preparationTime"`
	Servings        int            `json:"servings"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	AuthorID        string         `json:"authorId"`
	Author          *AuthorSummary `json:"author,omitempty"`
	LikeCount       int            `json:"likeCount"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// AuthorSummary is the public subset of a user attached to recipes in
// discovery and trending responses.
type AuthorSummary struct {
	Username       string `json:"username"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary returns the public author view of the user.
func (u *User) Summary() *AuthorSummary {
	return &AuthorSummary{
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

// RecipeActivity is the minimal projection the trending ranker scores:
// one row per recipe created inside the trending window.
type RecipeActivity struct {
	RecipeID  string
	LikeCount int
	CreatedAt time.Time
}
