package services

import (
	"math"
	"trip-planner-service/internal/domain"
)

const (
	earthRadiusKm    = 6371.0
	assumedSpeedKmh  = 25.0
	minTravelMinutes = 10
	maxTravelMinutes = 60

	// FallbackTravelMinutes is used when either place cannot be located.
	FallbackTravelMinutes = 20
)

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b domain.Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelMinutes converts the straight-line distance between two places into
// minutes at a fixed urban speed, clamped to [10, 60].
func EstimateTravelMinutes(from, to domain.Place) int {
	a, ok := from.Location.Coordinates()
	if !ok {
		return FallbackTravelMinutes
	}
	b, ok := to.Location.Coordinates()
	if !ok {
		return FallbackTravelMinutes
	}

	minutes := int(math.Round(HaversineKm(a, b) / assumedSpeedKmh * 60))
	return min(maxTravelMinutes, max(minTravelMinutes, minutes))
}
