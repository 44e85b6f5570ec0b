package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving candidate places.
type PlaceRepository interface {
	// Return places matching any city id or city name.
	// A non-empty selectedIDs restricts results to that allow-list.
	FindPlaces(ctx context.Context, cityIDs, cityNames, selectedIDs []string) ([]domain.Place, error)
}

// Port: a boundary for resolving city names.
type CityRepository interface {
	FindCitiesByIDs(ctx context.Context, ids []string) ([]domain.City, error)
}
