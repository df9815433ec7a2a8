// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

/*
Package database provides the DuckDB-backed persistence layer.

It implements the discovery engine's collaborator interfaces
(RecipeStore, TrendingStore, AuthorLookup) plus the CRUD operations the
HTTP layer needs for recipes, users, likes, and favorites.

Filter compilation lives in filter.go: a discovery.FilterSpec is turned
into a parameterized WHERE clause, keeping validation and query building
independently testable. Enum membership and numeric invariants are
enforced by CHECK constraints in the schema, which is why upstream
layers pass category and difficulty values through unvalidated.
*/
package database
