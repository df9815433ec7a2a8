// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package discovery

import (
	"net/url"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePaginationParams(url.Values{}, DefaultPageBounds())

	if p.Page != 1 {
		t.Errorf("Expected default page 1, got %d", p.Page)
	}
	if p.Limit != 10 {
		t.Errorf("Expected default limit 10, got %d", p.Limit)
	}
	if p.SortField != SortCreatedAt || !p.Descending {
		t.Errorf("Expected createdAt descending, got %s desc=%v", p.SortField, p.Descending)
	}
}

func TestParsePaginationLimitClamping(t *testing.T) {
	tests := []struct {
		name     string
		limit    string
		expected int
	}{
		{"oversized clamps to max", "1000", 50},
		{"at max", "50", 50},
		{"zero takes default", "0", 10},
		{"negative takes default", "-5", 10},
		{"non-numeric takes default", "abc", 10},
		{"missing takes default", "", 10},
		{"valid passes through", "25", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			if tt.limit != "" {
				q.Set("limit", tt.limit)
			}
			p := ParsePaginationParams(q, DefaultPageBounds())
			if p.Limit != tt.expected {
				t.Errorf("limit=%q: expected %d, got %d", tt.limit, tt.expected, p.Limit)
			}
		})
	}
}

func TestParsePaginationPage(t *testing.T) {
	tests := []struct {
		page     string
		expected int
	}{
		{"3", 3},
		{"0", 1},
		{"-2", 1},
		{"xyz", 1},
		{"", 1},
	}

	for _, tt := range tests {
		q := url.Values{}
		if tt.page != "" {
			q.Set("page", tt.page)
		}
		p := ParsePaginationParams(q, DefaultPageBounds())
		if p.Page != tt.expected {
			t.Errorf("page=%q: expected %d, got %d", tt.page, tt.expected, p.Page)
		}
	}
}

func TestParsePaginationSort(t *testing.T) {
	tests := []struct {
		sort       string
		field      SortField
		descending bool
	}{
		{"-createdAt", SortCreatedAt, true},
		{"createdAt", SortCreatedAt, false},
		{"-likes", SortLikes, true},
		{"likes", SortLikes, false},
		{"preparationTime", SortPreparationTime, false},
		{"-title", SortTitle, true},
		// Unknown fields fall back to createdAt descending.
		{"bogus", SortCreatedAt, true},
		{"-bogus", SortCreatedAt, true},
		{"", SortCreatedAt, true},
		{"DROP TABLE recipes", SortCreatedAt, true},
	}

	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			q := url.Values{}
			q.Set("sort", tt.sort)
			p := ParsePaginationParams(q, DefaultPageBounds())
			if p.SortField != tt.field || p.Descending != tt.descending {
				t.Errorf("sort=%q: expected (%s, desc=%v), got (%s, desc=%v)",
					tt.sort, tt.field, tt.descending, p.SortField, p.Descending)
			}
		})
	}
}

func TestPaginationSkip(t *testing.T) {
	p := PaginationSpec{Page: 3, Limit: 20}
	if p.Skip() != 40 {
		t.Errorf("Expected skip 40, got %d", p.Skip())
	}

	first := PaginationSpec{Page: 1, Limit: 10}
	if first.Skip() != 0 {
		t.Errorf("Expected skip 0 on first page, got %d", first.Skip())
	}
}
