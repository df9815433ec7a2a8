// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"strings"

	"github.com/forkful/forkful/internal/discovery"
)

// sortColumns maps the discovery sort allow-list onto recipe columns.
// The pagination normalizer guarantees the field is one of these, but an
// unknown value still degrades to created_at rather than reaching SQL.
var sortColumns = map[discovery.SortField]string{
	discovery.SortCreatedAt:       "created_at",
	discovery.SortLikes:           "like_count",
	discovery.SortPreparationTime: "prep_time_minutes",
	discovery.SortTitle:           "title",
}

// sortColumn resolves a sort field to its column name.
func sortColumn(field discovery.SortField) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return "created_at"
}

// buildFilterConditions builds WHERE clause conditions and args from a
// discovery.FilterSpec. Every present field narrows the result set;
// absent fields impose no constraint. The clauses combine with AND.
//
// An inverted preparation-time range (min > max) produces contradictory
// bounds and therefore zero matches, which is the contract for that
// input, not an error.
func buildFilterConditions(f discovery.FilterSpec) ([]string, []interface{}) {
	whereClauses := []string{}
	args := []interface{}{}

	if f.Category != "" {
		whereClauses = append(whereClauses, "category = ?")
		args = append(args, f.Category)
	}

	if f.Difficulty != "" {
		whereClauses = append(whereClauses, "difficulty = ?")
		args = append(args, f.Difficulty)
	}

	if f.SearchText != "" {
		// Case-insensitive substring match over title OR description.
		// LIKE metacharacters in the needle are escaped so a literal
		// "%" in user input stays a literal.
		pattern := "%" + escapeLike(f.SearchText) + "%"
		whereClauses = append(whereClauses, "(title ILIKE ? ESCAPE '\\' OR description ILIKE ? ESCAPE '\\')")
		args = append(args, pattern, pattern)
	}

	if f.MinPrepTime != nil {
		whereClauses = append(whereClauses, "prep_time_minutes >= ?")
		args = append(args, *f.MinPrepTime)
	}

	if f.MaxPrepTime != nil {
		whereClauses = append(whereClauses, "prep_time_minutes <= ?")
		args = append(args, *f.MaxPrepTime)
	}

	if f.AuthorID != "" {
		whereClauses = append(whereClauses, "author_id = ?")
		args = append(args, f.AuthorID)
	}

	return whereClauses, args
}

// buildFilterWhereClause wraps buildFilterConditions into a single WHERE
// clause string with a "1=1" base for safe concatenation.
//
// Example:
//
//	whereClause, args := buildFilterWhereClause(filter)
//	query := "SELECT count(*) FROM recipes WHERE " + whereClause
func buildFilterWhereClause(f discovery.FilterSpec) (string, []interface{}) {
	clauses, args := buildFilterConditions(f)
	if len(clauses) == 0 {
		return "1=1", args
	}
	return "1=1 AND " + strings.Join(clauses, " AND "), args
}

// escapeLike escapes LIKE pattern metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
