package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when the trip dates are missing, inverted
// or span more than MaxTripDays.
var ErrInvalidDateRange = errors.New("invalid date range")

// MaxTripDays bounds the inclusive length of one itinerary.
const MaxTripDays = 366

// CivilDate drops the clock and zone, keeping the calendar date at UTC midnight.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TripDays counts calendar days from start to end, both inclusive. The result is
// zero or negative when end is before start.
func TripDays(start, end time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((CivilDate(end).Unix()-CivilDate(start).Unix())/secondsPerDay) + 1
}

type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PacePacked  Pace = "packed"
)

// A city requested for the trip.
type City struct {
	ID   string `json:"cityId"`
	Name string `json:"name,omitempty"`
}

// Key matches the grouping key of places belonging to this city.
func (c City) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// TripInput holds the parameters of one itinerary generation.
// StartDate and EndDate are calendar dates, both inclusive.
type TripInput struct {
	StartDate              time.Time
	EndDate                time.Time
	Cities                 []City
	Pace                   Pace
	Interests              []string
	AllowSameDayCityTravel bool
	// Nil selects the default working window (09-18).
	PreferredStartHour *int
	PreferredEndHour   *int
	SelectedPlaceIDs   []string
}
