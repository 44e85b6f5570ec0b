package distance

import (
	"context"
	"fmt"
	"trip-planner-service/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Seconds  float64
}

// MockTravelTimeProvider answers from a fixed table. Unknown pairs use Default
// when it is set and fail otherwise.
type MockTravelTimeProvider struct {
	m       map[[2]domain.Coordinates]float64
	Default *float64
	Err     error
}

func NewMockTravelTimeProvider(pairs []MockPair) *MockTravelTimeProvider {
	m := make(map[[2]domain.Coordinates]float64, len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = p.Seconds
	}
	return &MockTravelTimeProvider{m: m}
}

// NewUniformMockProvider returns the same duration for every pair.
func NewUniformMockProvider(seconds float64) *MockTravelTimeProvider {
	p := NewMockTravelTimeProvider(nil)
	p.Default = &seconds
	return p
}

func (p *MockTravelTimeProvider) GetTravelTimes(
	_ context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
	_ string,
) ([]float64, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]float64, 0, len(destinations))
	for _, d := range destinations {
		if origin == d {
			out = append(out, 0)
			continue
		}
		if s, ok := p.m[[2]domain.Coordinates{origin, d}]; ok {
			out = append(out, s)
			continue
		}
		if p.Default != nil {
			out = append(out, *p.Default)
			continue
		}
		return nil, fmt.Errorf("missing pair %v -> %v", origin, d)
	}

	return out, nil
}
