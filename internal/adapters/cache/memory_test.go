package cache

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTravelTimeCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTravelTimeCache(time.Minute, time.Minute)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	stored := []float64{60, math.Inf(1)}
	c.Set(ctx, "k", stored, 0)
	stored[0] = 999

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 60.0, got[0])
	assert.True(t, math.IsInf(got[1], 1))

	got[0] = 1
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, 60.0, again[0], "returned slices must not alias the cache")
	assert.Equal(t, 1, c.Len())
}

func TestMemoryTravelTimeCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTravelTimeCache(time.Minute, time.Minute)

	c.Set(ctx, "short", []float64{1}, 20*time.Millisecond)
	_, ok := c.Get(ctx, "short")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "short")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
