package services

import (
	"context"
	"errors"
	"sync/atomic"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockPlaceRepo struct {
	mock.Mock
}

func (m *mockPlaceRepo) FindPlaces(ctx context.Context, cityIDs, cityNames, selectedIDs []string) ([]domain.Place, error) {
	args := m.Called(ctx, cityIDs, cityNames, selectedIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

type mockCityRepo struct {
	mock.Mock
}

func (m *mockCityRepo) FindCitiesByIDs(ctx context.Context, ids []string) ([]domain.City, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

// fixedProvider answers every lookup with the same duration per destination.
type fixedProvider struct {
	seconds float64
	calls   atomic.Int32
}

func (p *fixedProvider) GetTravelTimes(_ context.Context, _ domain.Coordinates, destinations []domain.Coordinates, _ string) ([]float64, error) {
	p.calls.Add(1)
	out := make([]float64, len(destinations))
	for i := range out {
		out[i] = p.seconds
	}
	return out, nil
}

type failingProvider struct {
	calls atomic.Int32
}

func (p *failingProvider) GetTravelTimes(context.Context, domain.Coordinates, []domain.Coordinates, string) ([]float64, error) {
	p.calls.Add(1)
	return nil, errors.New("matrix http 503")
}

type funcProvider func(origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error)

func (f funcProvider) GetTravelTimes(_ context.Context, origin domain.Coordinates, destinations []domain.Coordinates, _ string) ([]float64, error) {
	return f(origin, destinations)
}

func place(id, cityID string, rating float64, lat, lon string) domain.Place {
	return domain.Place{
		ID:       id,
		Name:     "Place " + id,
		CityID:   cityID,
		Ratings:  domain.Ratings{AverageRating: rating, NumberOfRatings: 10},
		Location: domain.Location{Latitude: lat, Longitude: lon},
	}
}

// alwaysOpen returns opening hours covering the whole day, every day.
func alwaysOpen() []domain.OpeningHours {
	hours := make([]domain.OpeningHours, 0, 7)
	for d := 0; d < 7; d++ {
		hours = append(hours, domain.OpeningHours{Day: d, Open: "00:00", Close: "24:00"})
	}
	return hours
}

func intPtr(v int) *int { return &v }
