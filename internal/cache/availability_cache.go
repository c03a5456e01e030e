// Package cache stores computed availability grids in Redis so the
// busiest read path does not hit MySQL on every request. Entries are
// invalidated by the booking writers on every create and cancel, with
// the TTL as a backstop against missed invalidations. A nil client
// disables the cache entirely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/padelgestionado/padel-club-api/internal/availability"
)

// AvailabilityCache caches one grid per calendar date.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a cache over rdb. rdb may be nil, in which case every
// method is a no-op and Get always misses.
func New(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(fecha string) string { return "disponibilidad:" + fecha }

// Enabled reports whether the cache is backed by a live client.
func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get returns the cached grid for the date and whether it was present.
// Corrupt or unreadable entries count as misses.
func (c *AvailabilityCache) Get(ctx context.Context, fecha string) ([]availability.CourtAvailability, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(fecha)).Bytes()
	if err != nil {
		return nil, false
	}
	var grid []availability.CourtAvailability
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, false
	}
	return grid, true
}

// Set stores the grid for the date. Failures are ignored; the cache is
// an optimization, never a source of truth.
func (c *AvailabilityCache) Set(ctx context.Context, fecha string, grid []availability.CourtAvailability) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(grid)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(fecha), raw, c.ttl).Err()
}

// Invalidate drops the date's entry. Called by the booking writers
// after every successful create or cancel so the next availability
// read recomputes from MySQL.
func (c *AvailabilityCache) Invalidate(ctx context.Context, fecha string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(fecha)).Err()
}
