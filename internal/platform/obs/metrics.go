package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TravelTimeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Name:      "travel_time_requests_total",
		Help:      "Travel-time matrix chunk requests by outcome (hit, success, error).",
	}, []string{"outcome"})

	ItineraryGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Name:      "itinerary_generations_total",
		Help:      "Itinerary generation calls by outcome.",
	}, []string{"outcome"})

	ItineraryGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trip_planner",
		Name:      "itinerary_generation_duration_seconds",
		Help:      "Wall time of itinerary generation, including travel-time lookups.",
		Buckets:   prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trip_planner",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "status"})
)
