package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"
	"trip-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "travel-times:"

// RedisTravelTimeCache shares provider durations across service instances.
//
// Redis failures degrade to cache misses; they are logged and never returned.
type RedisTravelTimeCache struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewRedisTravelTimeCache(client redis.UniversalClient, logger *slog.Logger) *RedisTravelTimeCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisTravelTimeCache{client: client, logger: logger}
}

func (r *RedisTravelTimeCache) Get(ctx context.Context, key string) ([]float64, bool) {
	var err error
	defer obs.Time(ctx, r.logger, "cache.redis.Get")(&err)

	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		err = nil
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	durations, err := decodeDurations(raw)
	if err != nil {
		return nil, false
	}
	return durations, true
}

func (r *RedisTravelTimeCache) Set(ctx context.Context, key string, durations []float64, ttl time.Duration) {
	var err error
	defer obs.Time(ctx, r.logger, "cache.redis.Set")(&err)

	raw, err := encodeDurations(durations)
	if err != nil {
		return
	}
	err = r.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err()
}

// JSON has no infinity, so unreachable destinations are stored as null.
func encodeDurations(durations []float64) ([]byte, error) {
	out := make([]*float64, len(durations))
	for i := range durations {
		if math.IsInf(durations[i], 0) || math.IsNaN(durations[i]) {
			continue
		}
		out[i] = &durations[i]
	}
	return json.Marshal(out)
}

func decodeDurations(raw []byte) ([]float64, error) {
	var in []*float64
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}

	out := make([]float64, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = *v
	}
	return out, nil
}
