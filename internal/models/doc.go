// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

// Package models defines the shared data structures exchanged between the
// HTTP layer, the discovery engine, and the persistence layer.
//
// The package contains only plain structs with JSON tags and a handful of
// enum helpers. It has no dependencies on other internal packages so that
// every layer can import it without cycles.
package models
