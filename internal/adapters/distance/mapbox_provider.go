package distance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.mapbox.com/directions-matrix/v1"
	DefaultProfile = "mapbox/driving-traffic"
	DefaultTTL     = 5 * time.Minute

	defaultCoordinateLimit = 25
)

// ErrMissingToken is returned when no Mapbox access token is configured.
var ErrMissingToken = errors.New("mapbox access token is not set")

// Maximum coordinates (origin included) per matrix request, by profile.
var profileLimits = map[string]int{
	"mapbox/driving-traffic": 10,
	"mapbox/driving":         25,
	"mapbox/walking":         25,
	"mapbox/cycling":         25,
}

// MapboxProvider implements TravelTimeProvider using the Mapbox Directions Matrix API.
//
// It coordinates:
//   - Chunking destinations to the profile's coordinate limit
//   - A time-bounded cache per chunk
//   - Client-side rate limiting
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type MapboxProvider struct {
	session *http.Client
	token   string
	baseURL string
	cache   ports.TravelTimeCache
	ttl     time.Duration
	limiter *rate.Limiter
	backoff time.Duration
	logger  *slog.Logger
}

type Option func(*MapboxProvider)

func WithBaseURL(u string) Option {
	return func(p *MapboxProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *MapboxProvider) { p.session = c }
}

// WithCache stores each chunk's durations for ttl.
func WithCache(c ports.TravelTimeCache, ttl time.Duration) Option {
	return func(p *MapboxProvider) {
		p.cache = c
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(p *MapboxProvider) {
		if perSecond <= 0 {
			p.limiter = nil
			return
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithBackoff sets the initial retry delay; it doubles on each attempt.
func WithBackoff(d time.Duration) Option {
	return func(p *MapboxProvider) { p.backoff = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *MapboxProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewMapboxProvider(token string, opts ...Option) (*MapboxProvider, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	provider := &MapboxProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		token:   token,
		baseURL: DefaultBaseURL,
		ttl:     DefaultTTL,
		backoff: 200 * time.Millisecond,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// CoordinateLimit returns the per-request coordinate limit for profile.
func CoordinateLimit(profile string) int {
	if n, ok := profileLimits[profile]; ok {
		return n
	}
	return defaultCoordinateLimit
}

// GetTravelTimes returns durations in seconds from origin to each destination.
// Destinations are split into chunks of at most limit-1 points and each chunk is
// cached independently, so the result is the in-order concatenation of all chunks.
func (p *MapboxProvider) GetTravelTimes(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
	profile string,
) (_ []float64, err error) {
	defer obs.Time(ctx, p.logger, "mapbox.GetTravelTimes")(&err)

	if profile == "" {
		profile = DefaultProfile
	}
	if len(destinations) == 0 {
		return []float64{}, nil
	}

	chunkSize := max(1, CoordinateLimit(profile)-1)
	durations := make([]float64, 0, len(destinations))

	for start := 0; start < len(destinations); start += chunkSize {
		chunk := destinations[start:min(start+chunkSize, len(destinations))]
		key := cache.BuildKey(profile, origin, chunk)

		if p.cache != nil {
			if cached, ok := p.cache.Get(ctx, key); ok && len(cached) == len(chunk) {
				obs.TravelTimeRequests.WithLabelValues("hit").Inc()
				durations = append(durations, cached...)
				continue
			}
		}

		row, err := p.fetchMatrixRow(ctx, profile, origin, chunk)
		if err != nil {
			obs.TravelTimeRequests.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("get travel times (%d destinations, offset %d): %w", len(chunk), start, err)
		}
		obs.TravelTimeRequests.WithLabelValues("success").Inc()

		if p.cache != nil {
			p.cache.Set(ctx, key, row, p.ttl)
		}
		durations = append(durations, row...)
	}

	return durations, nil
}
