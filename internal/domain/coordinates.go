package domain

import (
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Location as stored on a place. Values are numeric strings and may be empty.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Coordinates coerces the stored strings into numeric coordinates.
// ok is false when either value is missing or not a finite number.
func (l Location) Coordinates() (Coordinates, bool) {
	lat, ok := parseFinite(l.Latitude)
	if !ok {
		return Coordinates{}, false
	}
	lon, ok := parseFinite(l.Longitude)
	if !ok {
		return Coordinates{}, false
	}
	return Coordinates{Lon: lon, Lat: lat}, true
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
