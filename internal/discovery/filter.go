// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package discovery

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterSpec describes zero or more constraints on the recipe catalog.
// All fields are optional; a zero field imposes no constraint. Present
// fields combine with AND logic.
//
// Filter dimensions:
//   - Category, Difficulty: equality. Enum membership is not re-checked
//     here; the store's CHECK constraints are the authoritative gate.
//   - SearchText: case-insensitive substring match against title OR
//     description (not tokenized).
//   - MinPrepTime, MaxPrepTime: inclusive bounds in minutes. An
//     inverted range (min > max) yields zero matches, not an error.
//   - AuthorID: opaque identifier equality.
//
// FilterSpec is immutable after creation and safe for concurrent reads.
type FilterSpec struct {
	Category    string
	Difficulty  string
	SearchText  string
	MinPrepTime *int
	MaxPrepTime *int
	AuthorID    string
}

// ParseFilterParams builds a FilterSpec from raw query parameters.
//
// Parsing is deliberately permissive, matching the behavior of a public
// search box: empty or non-numeric values are treated as absent
// constraints, never as errors.
//
// Recognized parameters: category, difficulty, search, minTime,
// maxTime, author.
func ParseFilterParams(q url.Values) FilterSpec {
	return FilterSpec{
		Category:    strings.TrimSpace(q.Get("category")),
		Difficulty:  strings.TrimSpace(q.Get("difficulty")),
		SearchText:  strings.TrimSpace(q.Get("search")),
		MinPrepTime: parseOptionalInt(q.Get("minTime")),
		MaxPrepTime: parseOptionalInt(q.Get("maxTime")),
		AuthorID:    strings.TrimSpace(q.Get("author")),
	}
}

// IsZero reports whether the spec imposes no constraints at all.
func (f FilterSpec) IsZero() bool {
	return f.Category == "" && f.Difficulty == "" && f.SearchText == "" &&
		f.MinPrepTime == nil && f.MaxPrepTime == nil && f.AuthorID == ""
}

// parseOptionalInt parses s as an integer constraint.
// Missing or non-numeric input means "no constraint".
func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
