// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"strings"
	"testing"

	"github.com/forkful/forkful/internal/discovery"
)

func intPtr(v int) *int { return &v }

func TestBuildFilterWhereClauseEmpty(t *testing.T) {
	where, args := buildFilterWhereClause(discovery.FilterSpec{})
	if where != "1=1" {
		t.Errorf("expected bare 1=1 for empty filter, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args for empty filter, got %v", args)
	}
}

func TestBuildFilterWhereClauseAllFields(t *testing.T) {
	f := discovery.FilterSpec{
		Category:    "dessert",
		Difficulty:  "easy",
		SearchText:  "chocolate",
		MinPrepTime: intPtr(10),
		MaxPrepTime: intPtr(60),
		AuthorID:    "a1b2",
	}
	where, args := buildFilterWhereClause(f)

	for _, fragment := range []string{
		"category = ?",
		"difficulty = ?",
		"title ILIKE ?",
		"description ILIKE ?",
		"prep_time_minutes >= ?",
		"prep_time_minutes <= ?",
		"author_id = ?",
	} {
		if !strings.Contains(where, fragment) {
			t.Errorf("expected WHERE to contain %q, got %q", fragment, where)
		}
	}

	// Search binds twice (title and description), so seven placeholders.
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}
	if args[2] != "%chocolate%" || args[3] != "%chocolate%" {
		t.Errorf("expected search pattern %%chocolate%% bound twice, got %v", args[2:4])
	}
}

func TestBuildFilterWhereClauseSearchEscapesLikeMetachars(t *testing.T) {
	f := discovery.FilterSpec{SearchText: "100%_real"}
	_, args := buildFilterWhereClause(f)
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	want := `%100\%\_real%`
	if args[0] != want {
		t.Errorf("expected escaped pattern %q, got %q", want, args[0])
	}
}

func TestBuildFilterWhereClauseSingleField(t *testing.T) {
	where, args := buildFilterWhereClause(discovery.FilterSpec{Category: "snack"})
	if where != "1=1 AND category = ?" {
		t.Errorf("unexpected WHERE: %q", where)
	}
	if len(args) != 1 || args[0] != "snack" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestSortColumn(t *testing.T) {
	tests := []struct {
		field discovery.SortField
		want  string
	}{
		{discovery.SortCreatedAt, "created_at"},
		{discovery.SortLikes, "like_count"},
		{discovery.SortPreparationTime, "prep_time_minutes"},
		{discovery.SortTitle, "title"},
		{discovery.SortField("bogus"), "created_at"},
	}
	for _, tt := range tests {
		if got := sortColumn(tt.field); got != tt.want {
			t.Errorf("sortColumn(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
