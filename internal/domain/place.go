package domain

// Aggregate rating data of a place.
type Ratings struct {
	AverageRating   float64 `json:"averageRating"`
	NumberOfRatings int     `json:"numberOfRatings"`
}

// OpeningHours is one weekly opening entry. Day follows time.Weekday (0 = Sunday).
type OpeningHours struct {
	Day   int    `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Represents a candidate place to visit. Places are read-only inputs to planning.
type Place struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Category           string         `json:"category"`
	CityID             string         `json:"cityId,omitempty"`
	City               string         `json:"city,omitempty"`
	Ratings            Ratings        `json:"ratings"`
	Location           Location       `json:"location"`
	OpeningHoursWeekly []OpeningHours `json:"openingHoursWeekly"`
}

// CityKey groups a place by city id, then by raw city name, then "unknown".
func (p Place) CityKey() string {
	if p.CityID != "" {
		return p.CityID
	}
	if p.City != "" {
		return p.City
	}
	return UnknownCityKey
}

const UnknownCityKey = "unknown"
