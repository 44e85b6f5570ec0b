package services

import (
	"slices"
	"trip-planner-service/internal/domain"
)

const (
	WarnCitiesSkipped       = "Trip shorter than number of cities; some cities were skipped"
	WarnTravelDaysOmitted   = "Not enough days for travel between cities; some travel days omitted"
	WarnNoPlacesFound       = "No places found for selected cities"
	WarnNoCities            = "No cities selected for the trip"
	WarnInvalidWorkingHours = "Preferred hours are invalid; using the default 09:00-18:00 window"
)

// CityAssignment is the number of days given to one city.
type CityAssignment struct {
	City       domain.City
	DayCount   int
	PlaceCount int
}

// Allocation is the outcome of distributing trip days across cities.
// TravelDays are layered on top of the assignments, between consecutive cities.
type Allocation struct {
	Assignments []CityAssignment
	TravelDays  int
	Warnings    []string
}

// AllocateCityDays distributes totalDays across cities using a simple heuristic.
//
// Cities are ordered by how many candidate places they have; when the trip is shorter
// than the city list only the best-stocked cities are kept so every kept city gets a day.
// Days are then split evenly, with the remainder going to the first cities in order.
func AllocateCityDays(
	totalDays int,
	cities []domain.City,
	groups map[string][]domain.Place,
	allowSameDayCityTravel bool,
) Allocation {
	var alloc Allocation

	if totalDays <= 0 || len(cities) == 0 {
		return alloc
	}

	counted := make([]CityAssignment, 0, len(cities))
	for _, c := range cities {
		counted = append(counted, CityAssignment{City: c, PlaceCount: len(groups[c.Key()])})
	}

	// Stable so ties keep the caller's city order.
	slices.SortStableFunc(counted, func(a, b CityAssignment) int {
		return b.PlaceCount - a.PlaceCount
	})

	usable := counted
	if totalDays < len(counted) {
		usable = counted[:totalDays]
		alloc.Warnings = append(alloc.Warnings, WarnCitiesSkipped)
	}

	n := len(usable)
	base := totalDays / n
	remainder := totalDays % n

	for i := range usable {
		usable[i].DayCount = base
		if i < remainder {
			usable[i].DayCount++
		}
	}
	alloc.Assignments = usable

	if !allowSameDayCityTravel {
		required := max(0, n-1)
		available := max(0, totalDays-n)
		alloc.TravelDays = min(required, available)
		if required > available {
			alloc.Warnings = append(alloc.Warnings, WarnTravelDaysOmitted)
		}
	}

	return alloc
}
