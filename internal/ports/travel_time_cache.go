package ports

import (
	"context"
	"time"
)

// Time-bounded cache of provider durations keyed by rounded coordinates.
// Values are immutable once stored.
type TravelTimeCache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, durations []float64, ttl time.Duration)
}
