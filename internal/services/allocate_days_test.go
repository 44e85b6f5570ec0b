package services

import (
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupsOf(counts map[string]int) map[string][]domain.Place {
	groups := make(map[string][]domain.Place, len(counts))
	for key, n := range counts {
		for i := 0; i < n; i++ {
			groups[key] = append(groups[key], domain.Place{ID: key, CityID: key})
		}
	}
	return groups
}

func TestAllocateCityDays(t *testing.T) {
	lis := domain.City{ID: "lis", Name: "Lisbon"}
	opo := domain.City{ID: "opo", Name: "Porto"}
	fao := domain.City{ID: "fao", Name: "Faro"}

	t.Run("splits evenly with remainder to the best stocked city", func(t *testing.T) {
		alloc := AllocateCityDays(5, []domain.City{opo, lis}, groupsOf(map[string]int{"lis": 4, "opo": 3}), false)

		require.Len(t, alloc.Assignments, 2)
		assert.Equal(t, "lis", alloc.Assignments[0].City.ID)
		assert.Equal(t, 3, alloc.Assignments[0].DayCount)
		assert.Equal(t, 4, alloc.Assignments[0].PlaceCount)
		assert.Equal(t, "opo", alloc.Assignments[1].City.ID)
		assert.Equal(t, 2, alloc.Assignments[1].DayCount)
		assert.Equal(t, 1, alloc.TravelDays)
		assert.Empty(t, alloc.Warnings)
	})

	t.Run("ties keep request order", func(t *testing.T) {
		alloc := AllocateCityDays(2, []domain.City{opo, lis}, groupsOf(map[string]int{"lis": 2, "opo": 2}), true)

		require.Len(t, alloc.Assignments, 2)
		assert.Equal(t, "opo", alloc.Assignments[0].City.ID)
		assert.Equal(t, "lis", alloc.Assignments[1].City.ID)
	})

	t.Run("short trip skips cities and omits travel days", func(t *testing.T) {
		alloc := AllocateCityDays(2, []domain.City{fao, opo, lis}, groupsOf(map[string]int{"lis": 5, "opo": 3, "fao": 1}), false)

		require.Len(t, alloc.Assignments, 2)
		assert.Equal(t, "lis", alloc.Assignments[0].City.ID)
		assert.Equal(t, "opo", alloc.Assignments[1].City.ID)
		assert.Equal(t, 1, alloc.Assignments[0].DayCount)
		assert.Equal(t, 1, alloc.Assignments[1].DayCount)
		assert.Equal(t, 0, alloc.TravelDays)
		assert.Equal(t, []string{WarnCitiesSkipped, WarnTravelDaysOmitted}, alloc.Warnings)
	})

	t.Run("same day travel needs no travel days", func(t *testing.T) {
		alloc := AllocateCityDays(4, []domain.City{lis, opo, fao}, groupsOf(map[string]int{"lis": 1}), true)

		assert.Equal(t, 0, alloc.TravelDays)
		assert.Empty(t, alloc.Warnings)

		total := 0
		for _, a := range alloc.Assignments {
			total += a.DayCount
		}
		assert.Equal(t, 4, total)
	})

	t.Run("nothing to allocate", func(t *testing.T) {
		assert.Empty(t, AllocateCityDays(3, nil, nil, false).Assignments)
		assert.Empty(t, AllocateCityDays(0, []domain.City{lis}, nil, false).Assignments)
	})
}
