package dto

type CityRequest struct {
	CityID string `json:"cityId"`
	Name   string `json:"name"`
}

// ItineraryRequest dates are calendar dates in "YYYY-MM-DD" form.
type ItineraryRequest struct {
	StartDate              string        `json:"startDate"`
	EndDate                string        `json:"endDate"`
	Cities                 []CityRequest `json:"cities"`
	Pace                   string        `json:"pace"`
	Interests              []string      `json:"interests"`
	AllowSameDayCityTravel bool          `json:"allowSameDayCityTravel"`
	PreferredStartHour     *int          `json:"preferredStartHour"`
	PreferredEndHour       *int          `json:"preferredEndHour"`
	SelectedPlaceIDs       []string      `json:"selectedPlaceIds"`
}

type BlockResponse struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	PlaceID       string `json:"placeId,omitempty"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	CityID        string `json:"cityId,omitempty"`
	TravelMinutes *int   `json:"travelMinutes,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type DaySummaryResponse struct {
	TotalActivities int     `json:"totalActivities"`
	TotalHours      float64 `json:"totalHours"`
}

type DayResponse struct {
	DayNumber int                `json:"dayNumber"`
	Date      string             `json:"date"`
	CityID    string             `json:"cityId,omitempty"`
	CityName  string             `json:"cityName,omitempty"`
	Blocks    []BlockResponse    `json:"blocks"`
	Summary   DaySummaryResponse `json:"summary"`
}

type StatsResponse struct {
	TotalDays       int `json:"totalDays"`
	TotalActivities int `json:"totalActivities"`
}

type ItineraryResponse struct {
	Days     []DayResponse `json:"days"`
	Stats    StatsResponse `json:"stats"`
	Warnings []string      `json:"warnings"`
}
