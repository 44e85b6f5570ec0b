package dto

type OpeningHoursResponse struct {
	Day   int    `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type PlaceResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Category           string                 `json:"category,omitempty"`
	CityID             string                 `json:"cityId,omitempty"`
	City               string                 `json:"city,omitempty"`
	AverageRating      float64                `json:"averageRating"`
	NumberOfRatings    int                    `json:"numberOfRatings"`
	Latitude           string                 `json:"latitude,omitempty"`
	Longitude          string                 `json:"longitude,omitempty"`
	OpeningHoursWeekly []OpeningHoursResponse `json:"openingHoursWeekly"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
