package cache

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryTravelTimeCache is a process-local TravelTimeCache backed by go-cache.
// Expired entries are evicted by a janitor every cleanupInterval.
type MemoryTravelTimeCache struct {
	c *gocache.Cache
}

func NewMemoryTravelTimeCache(defaultTTL, cleanupInterval time.Duration) *MemoryTravelTimeCache {
	return &MemoryTravelTimeCache{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryTravelTimeCache) Get(_ context.Context, key string) ([]float64, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	durations, ok := v.([]float64)
	if !ok {
		return nil, false
	}
	// Callers append to the result; never hand out the stored slice.
	return slices.Clone(durations), true
}

// Set stores a copy of durations. A zero ttl uses the cache default.
func (m *MemoryTravelTimeCache) Set(_ context.Context, key string, durations []float64, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, slices.Clone(durations), ttl)
}

// Len reports the number of stored entries, including expired ones not yet evicted.
func (m *MemoryTravelTimeCache) Len() int {
	return m.c.ItemCount()
}
