package services

import (
	"math"
	"trip-planner-service/internal/domain"
)

// OrderByNearestNeighbor orders one city's places using a greedy nearest-neighbor walk.
//
// The walk starts at the first (highest-ranked) place and repeatedly moves to the
// closest remaining place by travel minutes. It does not attempt global tour
// optimization. Ties go to the earliest remaining place so the output is deterministic.
func OrderByNearestNeighbor(places []domain.Place, matrix *TravelMatrix) []domain.Place {
	if len(places) <= 2 {
		return append([]domain.Place(nil), places...)
	}

	remaining := append([]domain.Place(nil), places[1:]...)
	ordered := make([]domain.Place, 0, len(places))
	ordered = append(ordered, places[0])

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]

		bestIndex := 0
		bestMinutes := math.MaxInt
		// Strict comparison keeps the first-encountered minimum.
		for i, candidate := range remaining {
			minutes := TravelMinutes(matrix, last, candidate)
			if minutes < bestMinutes {
				bestMinutes = minutes
				bestIndex = i
			}
		}

		ordered = append(ordered, remaining[bestIndex])
		remaining = append(remaining[:bestIndex], remaining[bestIndex+1:]...)
	}

	return ordered
}
