package services

import (
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func blockTypes(blocks []domain.Block) []domain.BlockType {
	out := make([]domain.BlockType, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Type)
	}
	return out
}

func zeroMatrix(places []domain.Place) *TravelMatrix {
	m := &TravelMatrix{index: map[string]int{}, minutes: make([][]float64, len(places))}
	for i, p := range places {
		m.index[p.ID] = i
		m.minutes[i] = make([]float64, len(places))
	}
	return m
}

func TestDayScheduleNormalPaceWithLunch(t *testing.T) {
	places := make([]domain.Place, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		p := place(id, "lis", 4.8, "38.7", "-9.1")
		p.OpeningHoursWeekly = alwaysOpen()
		places = append(places, p)
	}

	s := NewDayScheduler(DefaultPolicy(), domain.PaceNormal, 9, 18, "lis", zeroMatrix(places))
	plan := s.Schedule(monday, places)

	assert.Equal(t, []domain.BlockType{
		domain.BlockActivity,
		domain.BlockActivity,
		domain.BlockActivity,
		domain.BlockMeal,
		domain.BlockActivity,
		domain.BlockFreeTime,
	}, blockTypes(plan.Blocks))

	assert.Equal(t, 4, plan.Activities)
	assert.InDelta(t, 7.0, plan.Hours, 1e-9)

	meal := plan.Blocks[3]
	assert.Equal(t, "Lunch break", meal.Title)
	assert.Equal(t, "13:30", meal.StartTime)
	assert.Equal(t, "14:30", meal.EndTime)

	last := plan.Blocks[len(plan.Blocks)-1]
	assert.Equal(t, "16:00", last.StartTime)
	assert.Equal(t, "18:00", last.EndTime)

	for _, b := range plan.Blocks {
		assert.Equal(t, "lis", b.CityID)
	}
}

func TestDayScheduleEmitsTravelBetweenPlaces(t *testing.T) {
	a := place("a", "lis", 5, "38.70", "-9.10")
	b := place("b", "lis", 4, "38.75", "-9.10")

	s := NewDayScheduler(DefaultPolicy(), domain.PaceRelaxed, 9, 18, "lis", nil)
	plan := s.Schedule(monday, []domain.Place{a, b})

	require.Equal(t, []domain.BlockType{
		domain.BlockActivity,
		domain.BlockTravel,
		domain.BlockActivity,
		domain.BlockFreeTime,
	}, blockTypes(plan.Blocks))

	travel := plan.Blocks[1]
	require.NotNil(t, travel.TravelMinutes)
	assert.Equal(t, 13, *travel.TravelMinutes)
	assert.Equal(t, "10:30", travel.StartTime)
	assert.Equal(t, "10:43", travel.EndTime)
	assert.Equal(t, "Place b", plan.Blocks[2].Title)
	assert.Equal(t, "b", plan.Blocks[2].PlaceID)
}

func TestDayScheduleSkipsClosedPlace(t *testing.T) {
	closedEarly := place("early", "lis", 5, "38.70", "-9.10")
	closedEarly.OpeningHoursWeekly = []domain.OpeningHours{
		{Day: int(monday.Weekday()), Open: "09:00", Close: "11:00"},
	}
	open := place("open", "lis", 4, "38.70", "-9.10")
	open.Category = "Museum"

	s := NewDayScheduler(DefaultPolicy(), domain.PaceNormal, 14, 18, "lis", nil)

	t.Run("step reports skip", func(t *testing.T) {
		st := dayState{cursor: 14 * 60}
		next, block, outcome := s.tryAddActivityBlock(st, closedEarly, monday.Weekday())

		assert.Equal(t, activitySkipped, outcome)
		assert.Nil(t, block)
		assert.Equal(t, st, next)
	})

	t.Run("later candidates are still scheduled", func(t *testing.T) {
		plan := s.Schedule(monday, []domain.Place{closedEarly, open})

		require.NotEmpty(t, plan.Blocks)
		first := plan.Blocks[0]
		assert.Equal(t, domain.BlockActivity, first.Type)
		assert.Equal(t, "open", first.PlaceID)
		assert.Equal(t, "14:00", first.StartTime)
		assert.Equal(t, "16:00", first.EndTime)
		assert.Equal(t, "Museum", first.Notes)
		assert.Equal(t, 1, plan.Activities)
	})
}

func TestDaySchedulerTerminatingSteps(t *testing.T) {
	unlocated := domain.Place{ID: "x", Name: "X"}
	other := domain.Place{ID: "y", Name: "Y"}

	s := NewDayScheduler(DefaultPolicy(), domain.PaceNormal, 9, 18, "lis", nil)

	t.Run("travel reaching the end of the day stops", func(t *testing.T) {
		st := dayState{cursor: 18*60 - FallbackTravelMinutes, last: &unlocated}
		_, block, ok := s.tryAddTravelBlock(st, other)

		assert.False(t, ok)
		assert.Nil(t, block)
	})

	t.Run("activity overrunning the day is day full", func(t *testing.T) {
		st := dayState{cursor: 17 * 60}
		_, block, outcome := s.tryAddActivityBlock(st, domain.Place{ID: "late", OpeningHoursWeekly: alwaysOpen()}, monday.Weekday())

		assert.Equal(t, activityDayFull, outcome)
		assert.Nil(t, block)
	})

	t.Run("meal only inside the lunch window", func(t *testing.T) {
		_, block := s.tryAddMealBlock(dayState{cursor: 12 * 60})
		assert.Nil(t, block)

		next, block := s.tryAddMealBlock(dayState{cursor: 13 * 60})
		require.NotNil(t, block)
		assert.Equal(t, domain.BlockMeal, block.Type)
		assert.Equal(t, 14*60, next.cursor)
		assert.Equal(t, 60, next.plannedMinutes)
	})
}

func TestDayScheduleEmptyDayIsFreeTime(t *testing.T) {
	s := NewDayScheduler(DefaultPolicy(), domain.PacePacked, 8, 20, "lis", nil)
	plan := s.Schedule(monday, nil)

	require.Len(t, plan.Blocks, 1)
	assert.Equal(t, domain.BlockFreeTime, plan.Blocks[0].Type)
	assert.Equal(t, "08:00", plan.Blocks[0].StartTime)
	assert.Equal(t, "20:00", plan.Blocks[0].EndTime)
	assert.Zero(t, plan.Activities)
	assert.Zero(t, plan.Hours)
}

func TestDayScheduleRespectsActivityCap(t *testing.T) {
	places := make([]domain.Place, 0, 6)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		p := domain.Place{ID: id, Name: id, OpeningHoursWeekly: alwaysOpen()}
		p.Category = "viewpoint"
		places = append(places, p)
	}

	policy := DefaultPolicy()
	policy.DefaultDurationMinutes = 30

	s := NewDayScheduler(policy, domain.PaceRelaxed, 9, 20, "", zeroMatrix(places))
	plan := s.Schedule(monday, places)

	assert.Equal(t, 3, plan.Activities)
}

func TestTravelDayBlocks(t *testing.T) {
	lis := domain.City{ID: "lis", Name: "Lisbon"}
	opo := domain.City{ID: "opo", Name: "Porto"}

	blocks := TravelDayBlocks(DefaultPolicy(), lis, opo, 9, 18)
	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockTravel, blocks[0].Type)
	assert.Equal(t, "Travel from Lisbon to Porto", blocks[0].Title)
	assert.Equal(t, "09:00", blocks[0].StartTime)
	assert.Equal(t, "18:00", blocks[0].EndTime)
	assert.Equal(t, "Travel day", blocks[0].Notes)
	assert.Equal(t, domain.BlockFreeTime, blocks[1].Type)
	assert.Equal(t, "Arrival and rest", blocks[1].Title)
	assert.Equal(t, "20:00", blocks[1].EndTime)

	late := TravelDayBlocks(DefaultPolicy(), domain.City{ID: "x"}, opo, 10, 23)
	require.Len(t, late, 2)
	assert.Equal(t, "Travel from City to Porto", late[0].Title)
	assert.Equal(t, "24:00", late[1].EndTime)

	assert.Len(t, TravelDayBlocks(DefaultPolicy(), lis, opo, 9, 24), 1)
}
