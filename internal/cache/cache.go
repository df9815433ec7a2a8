// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

// Package cache provides a thread-safe in-process result cache with
// per-read TTL, deep-copy-on-read semantics and pattern invalidation.
//
// Entries are stored as marshaled JSON so every Get decodes a fresh copy
// into the caller's destination: callers can never mutate cached state
// through what they received. Stale entries are evicted lazily on read;
// an optional background sweeper reclaims memory for keys that are never
// read again.
package cache

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// entry is a cached payload with its storage timestamp.
// Entries are immutable once stored; Set always replaces wholesale.
type entry struct {
	payload  []byte
	storedAt time.Time
}

// Cache is a process-wide, key-addressed store with per-entry TTL applied
// at read time. Construct one instance at startup and inject it where
// needed; per-test instances keep tests isolated.
//
// Get, Set and Invalidate are individually atomic with respect to each
// other. Callers never need external locking.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	statsMu sync.Mutex
	hits    int64
	misses  int64
	sets    int64

	// now is the clock, replaceable in tests to simulate expiry.
	now func() time.Time

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// Stats is a snapshot of cache counters, purely observational.
type Stats struct {
	Hits   int64    `json:"hits"`
	Misses int64    `json:"misses"`
	Sets   int64    `json:"sets"`
	Size   int      `json:"size"`
	Keys   []string `json:"keys"`
}

// New creates an empty cache. The background sweeper is not started;
// call StartSweeper if periodic reclamation is wanted (lazy expiry on
// read keeps results correct either way).
func New() *Cache {
	return &Cache{
		entries:   make(map[string]entry),
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
}

// SetClock replaces the cache's time source. Intended for tests that
// need to advance time past a TTL without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get decodes the payload stored under key into dest if the entry exists
// and is no older than ttl. A stale entry is evicted and counted as a
// miss. Returns true on a hit.
//
// dest must be a pointer to a type compatible with what Set stored; the
// decode produces an independent deep copy on every call.
func (c *Cache) Get(key string, ttl time.Duration, dest interface{}) bool {
	c.mu.RLock()
	e, exists := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return false
	}

	if now.Sub(e.storedAt) > ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry since the read above.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		return false
	}

	if err := json.Unmarshal(e.payload, dest); err != nil {
		// Incompatible destination type; treat as a miss rather than
		// handing the caller a partially decoded value.
		c.recordMiss()
		return false
	}

	c.recordHit()
	return true
}

// Set stores payload under key with storedAt = now, unconditionally
// replacing any prior entry. Returns an error only if the payload cannot
// be marshaled.
func (c *Cache) Set(key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cache: marshal payload for %q: %w", key, err)
	}

	c.mu.Lock()
	c.entries[key] = entry{payload: data, storedAt: c.now()}
	c.mu.Unlock()

	c.statsMu.Lock()
	c.sets++
	c.statsMu.Unlock()
	return nil
}

// Invalidate removes every key matching pattern and returns the count
// removed. Invalidating an already-empty matching set returns 0.
//
// Used when a mutation (a like toggled, a recipe edited) must force
// recomputation of any cached aggregate built on that data:
//
//	cache.Invalidate(regexp.MustCompile(`^trending:`))
func (c *Cache) Invalidate(pattern *regexp.Regexp) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if pattern.MatchString(key) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats returns a snapshot of counters, entry count and live keys.
// Diagnostics only; never consulted for correctness.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	size := len(c.entries)
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Sets:   c.sets,
		Size:   size,
		Keys:   keys,
	}
}

// StartSweeper starts a background goroutine that removes entries older
// than maxAge every interval. Stop terminates it. Safe to call once per
// cache; repeated calls are no-ops.
func (c *Cache) StartSweeper(interval, maxAge time.Duration) {
	c.sweepOnce.Do(func() {
		go c.sweepLoop(interval, maxAge)
	})
}

// Stop terminates the background sweeper, if running.
func (c *Cache) Stop() {
	select {
	case <-c.stopSweep:
		// already stopped
	default:
		close(c.stopSweep)
	}
}

// sweepLoop periodically removes entries older than maxAge.
func (c *Cache) sweepLoop(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep(maxAge)
		case <-c.stopSweep:
			return
		}
	}
}

// sweep removes all entries older than maxAge.
func (c *Cache) sweep(maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > maxAge {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
}

// GenerateKey creates a cache key from a namespace and request parameters.
// Parameters are serialized to JSON and hashed for a compact, stable key;
// identical parameters always produce identical keys.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to a simple string key
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
