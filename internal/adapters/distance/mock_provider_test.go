package distance

import (
	"context"
	"errors"
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTravelTimeProvider(t *testing.T) {
	a := domain.Coordinates{Lon: 1, Lat: 1}
	b := domain.Coordinates{Lon: 2, Lat: 2}
	c := domain.Coordinates{Lon: 3, Lat: 3}

	p := NewMockTravelTimeProvider([]MockPair{{From: a, To: b, Seconds: 300}})

	got, err := p.GetTravelTimes(context.Background(), a, []domain.Coordinates{a, b}, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 300}, got)

	_, err = p.GetTravelTimes(context.Background(), a, []domain.Coordinates{c}, "")
	assert.Error(t, err)

	uniform := NewUniformMockProvider(120)
	got, err = uniform.GetTravelTimes(context.Background(), a, []domain.Coordinates{b, c}, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 120}, got)

	uniform.Err = errors.New("down")
	_, err = uniform.GetTravelTimes(context.Background(), a, []domain.Coordinates{b}, "")
	assert.Error(t, err)
}
