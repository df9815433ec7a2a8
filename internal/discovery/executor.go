// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package discovery

import (
	"context"
	"fmt"

	"github.com/forkful/forkful/internal/models"
)

// RecipeStore is the persistence collaborator the executor queries.
// Implementations apply the FilterSpec as a conjunction of constraints,
// order by the given sort, and return one page of items together with
// the total count matching the filter.
type RecipeStore interface {
	CountAndFetch(ctx context.Context, f FilterSpec, sort SortField, descending bool, skip, limit int) ([]models.Recipe, int, error)
}

// AuthorLookup resolves an author ID to its public summary.
// A missing author yields (nil, nil); items keep a nil Author.
type AuthorLookup interface {
	AuthorSummary(ctx context.Context, authorID string) (*models.AuthorSummary, error)
}

// Page is one page of discovery results with pagination metadata.
// Constructed fresh per request, never persisted.
type Page struct {
	Items      []models.Recipe
	Page       int
	Limit      int
	TotalItems int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Executor translates a FilterSpec and PaginationSpec into store
// queries and assembles the result page.
//
// The executor performs no internal retries; a store or lookup failure
// propagates to the caller, which owns the retry/degrade policy.
type Executor struct {
	store   RecipeStore
	authors AuthorLookup
}

// NewExecutor creates an executor over the given collaborators.
func NewExecutor(store RecipeStore, authors AuthorLookup) *Executor {
	return &Executor{store: store, authors: authors}
}

// Execute runs the count and fetch queries for the given specs and
// returns the assembled page.
//
// Guarantees:
//   - len(Items) <= p.Limit
//   - TotalPages == ceil(TotalItems / Limit)
//   - a page past the end yields empty Items and HasNext == false,
//     not an error
func (e *Executor) Execute(ctx context.Context, f FilterSpec, p PaginationSpec) (*Page, error) {
	items, total, err := e.store.CountAndFetch(ctx, f, p.SortField, p.Descending, p.Skip(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("discovery: count and fetch: %w", err)
	}
	if items == nil {
		items = []models.Recipe{}
	}

	if err := EnrichAuthors(ctx, e.authors, items); err != nil {
		return nil, err
	}

	totalPages := (total + p.Limit - 1) / p.Limit

	return &Page{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}, nil
}

// EnrichAuthors attaches author summaries to each recipe in place.
// Lookups are deduplicated per author so a page by one author costs a
// single lookup. Lookup errors propagate; unknown authors leave a nil
// Author rather than failing the page.
func EnrichAuthors(ctx context.Context, authors AuthorLookup, recipes []models.Recipe) error {
	if authors == nil || len(recipes) == 0 {
		return nil
	}

	summaries := make(map[string]*models.AuthorSummary)
	for i := range recipes {
		id := recipes[i].AuthorID
		if id == "" {
			continue
		}
		summary, seen := summaries[id]
		if !seen {
			var err error
			summary, err = authors.AuthorSummary(ctx, id)
			if err != nil {
				return fmt.Errorf("discovery: author lookup %s: %w", id, err)
			}
			summaries[id] = summary
		}
		recipes[i].Author = summary
	}
	return nil
}
