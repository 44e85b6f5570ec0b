package services

import (
	"math"
	"time"
	"trip-planner-service/internal/domain"
)

// DayPlan is the scheduled content of one calendar day.
type DayPlan struct {
	Blocks     []domain.Block
	Activities int
	Hours      float64
}

// dayState is the scheduler's position while walking the candidate list.
// plannedMinutes counts activity and meal time only.
type dayState struct {
	cursor         int
	activities     int
	plannedMinutes int
	last           *domain.Place
}

type activityOutcome int

const (
	activityScheduled activityOutcome = iota
	// The place is closed for the slot; the next candidate may still fit.
	activitySkipped
	// Nothing else fits before the end of the day.
	activityDayFull
)

// DayScheduler fills one day of one city. The zero value is not usable; build it
// with NewDayScheduler.
type DayScheduler struct {
	policy   Policy
	limits   PaceLimits
	dayStart int
	dayEnd   int
	cityID   string
	matrix   *TravelMatrix
}

// NewDayScheduler builds a scheduler for the working window [startHour, endHour).
func NewDayScheduler(policy Policy, pace domain.Pace, startHour, endHour int, cityID string, matrix *TravelMatrix) DayScheduler {
	return DayScheduler{
		policy:   policy,
		limits:   policy.Limits(pace),
		dayStart: startHour * 60,
		dayEnd:   endHour * 60,
		cityID:   cityID,
		matrix:   matrix,
	}
}

// Schedule walks ordered once and emits the day's blocks.
//
// A travel leg or activity that would run past the end of the day stops scheduling.
// A place closed for the slot is skipped without ending the day.
func (s DayScheduler) Schedule(date time.Time, ordered []domain.Place) DayPlan {
	st := dayState{cursor: s.dayStart}
	blocks := make([]domain.Block, 0, 2*len(ordered)+1)

	for i := range ordered {
		place := &ordered[i]

		if st.activities >= s.limits.MaxActivities {
			break
		}

		if st.last != nil {
			next, block, ok := s.tryAddTravelBlock(st, *place)
			if !ok {
				break
			}
			st = next
			if block != nil {
				blocks = append(blocks, *block)
			}
		}

		next, block, outcome := s.tryAddActivityBlock(st, *place, date.Weekday())
		if outcome == activitySkipped {
			continue
		}
		if outcome == activityDayFull {
			break
		}
		st = next
		st.last = place
		blocks = append(blocks, *block)

		st, block = s.tryAddMealBlock(st)
		if block != nil {
			blocks = append(blocks, *block)
		}

		if st.plannedMinutes >= s.limits.MaxHours*60 {
			break
		}
	}

	if st.cursor < s.dayEnd {
		blocks = append(blocks, s.freeTimeBlock(st.cursor, s.dayEnd))
	}

	return DayPlan{
		Blocks:     blocks,
		Activities: st.activities,
		Hours:      math.Round(float64(st.plannedMinutes)/60*10) / 10,
	}
}

// tryAddTravelBlock moves the cursor from the last scheduled place to next.
// ok is false when the leg would reach the end of the day. A zero-minute leg
// advances nothing and emits no block.
func (s DayScheduler) tryAddTravelBlock(st dayState, next domain.Place) (dayState, *domain.Block, bool) {
	minutes := TravelMinutes(s.matrix, *st.last, next)
	if st.cursor+minutes >= s.dayEnd {
		return st, nil, false
	}
	if minutes <= 0 {
		return st, nil, true
	}

	travel := minutes
	block := &domain.Block{
		Type:          domain.BlockTravel,
		Title:         "Travel",
		StartTime:     domain.FormatClock(st.cursor),
		EndTime:       domain.FormatClock(st.cursor + minutes),
		CityID:        s.cityID,
		TravelMinutes: &travel,
	}
	st.cursor += minutes

	return st, block, true
}

// tryAddActivityBlock schedules place at the cursor if it is open for the whole visit
// and the visit ends within the day.
func (s DayScheduler) tryAddActivityBlock(st dayState, place domain.Place, weekday time.Weekday) (dayState, *domain.Block, activityOutcome) {
	duration := s.policy.ActivityMinutes(place)

	openAt, closeAt := s.policy.OpeningWindow(place, weekday)
	if st.cursor < openAt || st.cursor+duration > closeAt {
		return st, nil, activitySkipped
	}

	if st.cursor+duration > s.dayEnd {
		return st, nil, activityDayFull
	}

	title := place.Name
	if title == "" {
		title = "Attraction"
	}

	block := &domain.Block{
		Type:      domain.BlockActivity,
		Title:     title,
		PlaceID:   place.ID,
		StartTime: domain.FormatClock(st.cursor),
		EndTime:   domain.FormatClock(st.cursor + duration),
		CityID:    s.cityID,
		Notes:     place.Category,
	}

	st.cursor += duration
	st.plannedMinutes += duration
	st.activities++

	return st, block, activityScheduled
}

// tryAddMealBlock inserts lunch when the cursor sits inside the lunch window.
// The cursor only moves forward, so this fires at most once per day.
func (s DayScheduler) tryAddMealBlock(st dayState) (dayState, *domain.Block) {
	if st.cursor < s.policy.LunchFrom || st.cursor > s.policy.LunchTo {
		return st, nil
	}
	if st.cursor+s.policy.MealMinutes > s.dayEnd {
		return st, nil
	}

	block := &domain.Block{
		Type:      domain.BlockMeal,
		Title:     "Lunch break",
		StartTime: domain.FormatClock(st.cursor),
		EndTime:   domain.FormatClock(st.cursor + s.policy.MealMinutes),
		CityID:    s.cityID,
	}
	st.cursor += s.policy.MealMinutes
	st.plannedMinutes += s.policy.MealMinutes

	return st, block
}

func (s DayScheduler) freeTimeBlock(from, to int) domain.Block {
	return domain.Block{
		Type:      domain.BlockFreeTime,
		Title:     "Free time",
		StartTime: domain.FormatClock(from),
		EndTime:   domain.FormatClock(to),
		CityID:    s.cityID,
	}
}

// TravelDayBlocks builds the blocks of a dedicated inter-city travel day: one travel
// block over the working window and an arrival rest after it, capped at midnight.
func TravelDayBlocks(policy Policy, from, to domain.City, startHour, endHour int) []domain.Block {
	fromName := from.Name
	if fromName == "" {
		fromName = "City"
	}
	toName := to.Name
	if toName == "" {
		toName = "City"
	}

	dayStart := startHour * 60
	dayEnd := endHour * 60

	blocks := []domain.Block{{
		Type:      domain.BlockTravel,
		Title:     "Travel from " + fromName + " to " + toName,
		StartTime: domain.FormatClock(dayStart),
		EndTime:   domain.FormatClock(dayEnd),
		Notes:     "Travel day",
	}}

	restEnd := min(dayEnd+policy.ArrivalRestMinutes, 24*60)
	if restEnd > dayEnd {
		blocks = append(blocks, domain.Block{
			Type:      domain.BlockFreeTime,
			Title:     "Arrival and rest",
			StartTime: domain.FormatClock(dayEnd),
			EndTime:   domain.FormatClock(restEnd),
		})
	}

	return blocks
}
