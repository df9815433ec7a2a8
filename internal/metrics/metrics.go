// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

// Package metrics registers and exposes Prometheus instrumentation for
// the HTTP surface, the discovery cache, and recipe activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts completed HTTP requests by method, route
	// pattern, and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forkful",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed, by method, route, and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "forkful",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds, by method and route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// HTTPRequestsInFlight gauges concurrently executing requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "forkful",
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// CacheHits counts discovery cache hits by namespace (listing vs
	// trending).
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forkful",
			Name:      "cache_hits_total",
			Help:      "Discovery cache hits, by cache namespace.",
		},
		[]string{"namespace"},
	)

	// CacheMisses counts discovery cache misses by namespace.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forkful",
			Name:      "cache_misses_total",
			Help:      "Discovery cache misses, by cache namespace.",
		},
		[]string{"namespace"},
	)

	// RecipesCreated counts successful recipe creations.
	RecipesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "forkful",
			Name:      "recipes_created_total",
			Help:      "Total recipes created.",
		},
	)

	// LikesToggled counts like toggles by resulting state.
	LikesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forkful",
			Name:      "likes_toggled_total",
			Help:      "Total like toggles, by resulting state (liked or unliked).",
		},
		[]string{"state"},
	)
)
