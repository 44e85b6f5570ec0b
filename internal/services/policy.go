package services

import (
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

// PaceLimits caps how much is planned on a single day.
type PaceLimits struct {
	MaxActivities int
	MaxHours      int
}

// CategoryDuration maps a category substring (lowercase) to a visit length.
type CategoryDuration struct {
	Match   string
	Minutes int
}

// Policy holds the scheduling heuristics. DefaultPolicy reproduces production values;
// tests substitute their own.
type Policy struct {
	Paces       map[domain.Pace]PaceLimits
	DefaultPace domain.Pace

	// Checked in order; first match wins.
	CategoryDurations      []CategoryDuration
	DefaultDurationMinutes int

	// Minutes since midnight, used when a place has no entry for the weekday.
	DefaultOpen  int
	DefaultClose int

	// A meal is inserted when the cursor lands inside [LunchFrom, LunchTo].
	LunchFrom   int
	LunchTo     int
	MealMinutes int

	DefaultStartHour int
	DefaultEndHour   int

	// Length of the arrival block after a travel day.
	ArrivalRestMinutes int
}

func DefaultPolicy() Policy {
	return Policy{
		Paces: map[domain.Pace]PaceLimits{
			domain.PaceRelaxed: {MaxActivities: 3, MaxHours: 6},
			domain.PaceNormal:  {MaxActivities: 4, MaxHours: 7},
			domain.PacePacked:  {MaxActivities: 5, MaxHours: 8},
		},
		DefaultPace: domain.PaceNormal,
		CategoryDurations: []CategoryDuration{
			{Match: "museum", Minutes: 120},
			{Match: "park", Minutes: 120},
			{Match: "restaurant", Minutes: 90},
			{Match: "night", Minutes: 90},
		},
		DefaultDurationMinutes: 90,
		DefaultOpen:            9 * 60,
		DefaultClose:           18 * 60,
		LunchFrom:              12*60 + 30,
		LunchTo:                13*60 + 30,
		MealMinutes:            60,
		DefaultStartHour:       9,
		DefaultEndHour:         18,
		ArrivalRestMinutes:     120,
	}
}

// Limits returns the caps for pace, falling back to the default pace for unknown values.
func (p Policy) Limits(pace domain.Pace) PaceLimits {
	if l, ok := p.Paces[pace]; ok {
		return l
	}
	return p.Paces[p.DefaultPace]
}

// ActivityMinutes estimates how long a visit to place takes.
func (p Policy) ActivityMinutes(place domain.Place) int {
	category := strings.ToLower(place.Category)
	for _, cd := range p.CategoryDurations {
		if strings.Contains(category, cd.Match) {
			return cd.Minutes
		}
	}
	return p.DefaultDurationMinutes
}

// OpeningWindow returns the [open, close] minutes of place on weekday.
// Entries with unparseable times are ignored.
func (p Policy) OpeningWindow(place domain.Place, weekday time.Weekday) (openAt, closeAt int) {
	for _, oh := range place.OpeningHoursWeekly {
		if oh.Day != int(weekday) || oh.Open == "" || oh.Close == "" {
			continue
		}

		o, err := domain.ParseClock(oh.Open)
		if err != nil {
			continue
		}
		c, err := domain.ParseClock(oh.Close)
		if err != nil {
			continue
		}
		return o, c
	}

	return p.DefaultOpen, p.DefaultClose
}
