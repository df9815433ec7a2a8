// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

/*
Package discovery implements the recipe discovery engine: filter
composition, pagination with sorting, and the time-decayed trending
ranking.

The package is deliberately permissive at its boundaries. Browse
endpoints must stay available for arbitrary client-supplied query
strings, so malformed pagination, sort, and numeric filter input
degrades to defaults instead of failing the request. The only inputs
rejected outright are malformed identifiers, which are caught at the
HTTP layer before any store access.

Persistence is abstracted behind small collaborator interfaces
(RecipeStore, TrendingStore, AuthorLookup) so the engine can be tested
against fakes and bound to any store that supports field equality,
range, substring match, and aggregation.
*/
package discovery
