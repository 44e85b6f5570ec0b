package api

import (
	"log/slog"
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	MetricsEnabled bool
	// Inbound requests per second; zero disables limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Empty allows any origin.
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	generator handlers.ItineraryGenerator,
	places ports.PlaceRepository,
	logger *slog.Logger,
	opts RouterOptions,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	itineraryHandler := &handlers.ItineraryHandler{Generator: generator, Logger: logger}
	placeHandler := &handlers.PlaceHandler{Repo: places, Logger: logger}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/itineraries", itineraryHandler.Create)
	mux.HandleFunc("/places", placeHandler.List)
	if opts.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	var h http.Handler = mux
	if opts.RateLimitPerSecond > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = max(1, int(opts.RateLimitPerSecond))
		}
		h = rateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), burst), h)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	h = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(h)

	return requestIDMiddleware(loggingMiddleware(logger, h))
}
