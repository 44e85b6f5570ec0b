package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for retrieving travel durations from one origin to many destinations.
type TravelTimeProvider interface {
	// Return durations in seconds, one per destination in the same order.
	// Unreachable destinations are reported as +Inf.
	// Any failure fails the whole lookup; callers decide how to degrade.
	GetTravelTimes(
		ctx context.Context,
		origin domain.Coordinates,
		destinations []domain.Coordinates,
		profile string,
	) ([]float64, error)
}
