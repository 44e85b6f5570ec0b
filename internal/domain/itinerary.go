package domain

import "time"

type BlockType string

const (
	BlockActivity BlockType = "activity"
	BlockTravel   BlockType = "travel"
	BlockFreeTime BlockType = "free_time"
	BlockMeal     BlockType = "meal"
	BlockRest     BlockType = "rest"
)

// Represents a single scheduled span within a day.
// StartTime and EndTime are 24h "HH:MM" strings with StartTime < EndTime.
type Block struct {
	Type          BlockType `json:"type"`
	Title         string    `json:"title"`
	PlaceID       string    `json:"placeId,omitempty"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	CityID        string    `json:"cityId,omitempty"`
	TravelMinutes *int      `json:"travelMinutes,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type DaySummary struct {
	TotalActivities int     `json:"totalActivities"`
	TotalHours      float64 `json:"totalHours"`
}

// One calendar day of the itinerary. Blocks are time ordered and non-overlapping.
type Day struct {
	DayNumber int        `json:"dayNumber"`
	Date      time.Time  `json:"date"`
	CityID    string     `json:"cityId,omitempty"`
	CityName  string     `json:"cityName,omitempty"`
	Blocks    []Block    `json:"blocks"`
	Summary   DaySummary `json:"summary"`
}

type Stats struct {
	TotalDays       int `json:"totalDays"`
	TotalActivities int `json:"totalActivities"`
}

// Represents a generated itinerary.
// It is computed fresh per generation call and never mutated afterwards.
type Result struct {
	Days     []Day    `json:"days"`
	Stats    Stats    `json:"stats"`
	Warnings []string `json:"warnings"`
}
