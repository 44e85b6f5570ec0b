package services

import (
	"context"
	"log/slog"
	"math"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const (
	DefaultMatrixProfile = "mapbox/driving-traffic"
	DefaultMatrixCeiling = 10
)

// TravelMatrix holds provider travel minutes between the places of one city.
// A nil row means the provider failed for that origin.
type TravelMatrix struct {
	index   map[string]int
	minutes [][]float64
}

// Minutes returns the matrix value from one place to another when it is known and finite.
func (m *TravelMatrix) Minutes(fromID, toID string) (int, bool) {
	if m == nil {
		return 0, false
	}

	i, ok := m.index[fromID]
	if !ok {
		return 0, false
	}
	j, ok := m.index[toID]
	if !ok {
		return 0, false
	}

	row := m.minutes[i]
	if j >= len(row) {
		return 0, false
	}

	v := row[j]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}

// TravelMinutes prefers the matrix and falls back to the geo estimate per pair.
func TravelMinutes(m *TravelMatrix, from, to domain.Place) int {
	if v, ok := m.Minutes(from.ID, to.ID); ok {
		return v
	}
	return EstimateTravelMinutes(from, to)
}

// MatrixBuilder requests per-city travel matrices from a provider.
// A nil provider disables matrix lookups entirely.
type MatrixBuilder struct {
	provider ports.TravelTimeProvider
	profile  string
	ceiling  int
	logger   *slog.Logger
}

func NewMatrixBuilder(provider ports.TravelTimeProvider, profile string, ceiling int, logger *slog.Logger) *MatrixBuilder {
	if profile == "" {
		profile = DefaultMatrixProfile
	}
	if ceiling <= 0 {
		ceiling = DefaultMatrixCeiling
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MatrixBuilder{
		provider: provider,
		profile:  profile,
		ceiling:  ceiling,
		logger:   logger,
	}
}

// Build returns nil when a matrix is not worth requesting: no provider, no places,
// more places than the provider ceiling, or any place without coordinates.
//
// Provider failures never propagate. A failed origin leaves its row empty and
// lookups from that origin use the geo estimate.
func (b *MatrixBuilder) Build(ctx context.Context, places []domain.Place) *TravelMatrix {
	if b == nil || b.provider == nil || len(places) == 0 || len(places) > b.ceiling {
		return nil
	}

	coords := make([]domain.Coordinates, 0, len(places))
	for _, p := range places {
		c, ok := p.Location.Coordinates()
		if !ok {
			return nil
		}
		coords = append(coords, c)
	}

	m := &TravelMatrix{
		index:   make(map[string]int, len(places)),
		minutes: make([][]float64, len(places)),
	}
	for i, p := range places {
		m.index[p.ID] = i
	}

	filled := 0
	for i, origin := range coords {
		seconds, err := b.provider.GetTravelTimes(ctx, origin, coords, b.profile)
		if err != nil {
			b.logger.WarnContext(ctx, "travel time lookup failed; using distance estimate",
				slog.String("origin_place", places[i].ID),
				slog.Any("error", err),
			)
			continue
		}

		row := make([]float64, len(seconds))
		for j, s := range seconds {
			row[j] = math.Round(s / 60)
		}
		m.minutes[i] = row
		filled++
	}

	if filled == 0 {
		return nil
	}
	return m
}
