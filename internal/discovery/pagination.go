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

// SortField identifies a recipe attribute results may be ordered by.
type SortField string

// Allowed sort fields. Anything outside this set falls back to
// SortCreatedAt descending.
const (
	SortCreatedAt       SortField = "createdAt"
	SortLikes           SortField = "likes"
	SortPreparationTime SortField = "preparationTime"
	SortTitle           SortField = "title"
)

// allowedSortFields is the allow-list consulted during normalization.
var allowedSortFields = map[SortField]bool{
	SortCreatedAt:       true,
	SortLikes:           true,
	SortPreparationTime: true,
	SortTitle:           true,
}

// PaginationSpec holds normalized page, limit, and sort parameters.
// Construct via ParsePaginationParams; a zero PaginationSpec is not
// meaningful.
type PaginationSpec struct {
	Page       int
	Limit      int
	SortField  SortField
	Descending bool
}

// PageBounds configures pagination defaults and the hard page-size cap.
type PageBounds struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPageBounds matches the service defaults: 10 per page, 50 max.
func DefaultPageBounds() PageBounds {
	return PageBounds{DefaultLimit: 10, MaxLimit: 50}
}

// ParsePaginationParams normalizes page/limit/sort from raw query
// parameters. No errors are ever raised: invalid input degrades to
// defaults so browse endpoints stay available for malformed query
// strings.
//
//   - page: integer >= 1; default 1 on missing, non-numeric, or < 1.
//   - limit: integer; default bounds.DefaultLimit; clamped to
//     [1, bounds.MaxLimit]. Zero and negative values take the default.
//   - sort: a single field name, with a leading '-' for descending
//     (e.g. "-createdAt"). Unrecognized fields fall back to createdAt
//     descending.
func ParsePaginationParams(q url.Values, bounds PageBounds) PaginationSpec {
	if bounds.DefaultLimit < 1 {
		bounds = DefaultPageBounds()
	}

	spec := PaginationSpec{
		Page:       1,
		Limit:      bounds.DefaultLimit,
		SortField:  SortCreatedAt,
		Descending: true,
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		spec.Page = page
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 1 {
		if limit > bounds.MaxLimit {
			limit = bounds.MaxLimit
		}
		spec.Limit = limit
	}

	spec.SortField, spec.Descending = parseSort(q.Get("sort"))
	return spec
}

// parseSort splits a sort expression into (field, descending).
// A leading '-' denotes descending order. Unknown fields produce the
// default createdAt descending so malformed client input can never
// surface an unsorted result or a storage error.
func parseSort(raw string) (SortField, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortCreatedAt, true
	}

	descending := false
	if strings.HasPrefix(raw, "-") {
		descending = true
		raw = raw[1:]
	}

	field := SortField(raw)
	if !allowedSortFields[field] {
		return SortCreatedAt, true
	}
	return field, descending
}

// Skip returns the fetch offset for the spec's page and limit.
func (p PaginationSpec) Skip() int {
	return (p.Page - 1) * p.Limit
}
