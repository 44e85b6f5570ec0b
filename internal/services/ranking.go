package services

import (
	"slices"
	"trip-planner-service/internal/domain"
)

// RankPlaces returns a copy of places sorted by average rating, then rating count,
// both descending. Equal keys keep their input order.
func RankPlaces(places []domain.Place) []domain.Place {
	ranked := slices.Clone(places)

	slices.SortStableFunc(ranked, func(a, b domain.Place) int {
		if a.Ratings.AverageRating != b.Ratings.AverageRating {
			if a.Ratings.AverageRating > b.Ratings.AverageRating {
				return -1
			}
			return 1
		}
		return b.Ratings.NumberOfRatings - a.Ratings.NumberOfRatings
	})

	return ranked
}

// GroupByCity partitions places by domain.Place.CityKey, preserving order within a group.
func GroupByCity(places []domain.Place) map[string][]domain.Place {
	groups := make(map[string][]domain.Place)
	for _, p := range places {
		key := p.CityKey()
		groups[key] = append(groups[key], p)
	}
	return groups
}
