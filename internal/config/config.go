package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	SeedPath    string
	LogLevel    slog.Level

	MapboxToken         string
	MapboxBaseURL       string
	MapboxProfile       string
	MapboxRatePerSecond float64
	RedisURL            string
	TravelCacheTTL      time.Duration
	MatrixPlaceCeiling  int
	MatrixConcurrency   int
	RateLimitPerSecond  float64
	RateLimitBurst      int
	MetricsEnabled      bool
	TracingEnabled      bool
	CORSAllowedOrigins  []string
	ShutdownGracePeriod time.Duration
}

// Load reads the service configuration from the environment.
// DATABASE_URL is the only required value.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:               Get("PORT", "8080"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:           Get("SEED_PATH", "data/seeds/places.json"),
		MapboxToken:        strings.TrimSpace(os.Getenv("MAPBOX_ACCESS_TOKEN")),
		MapboxBaseURL:      Get("MAPBOX_BASE_URL", ""),
		MapboxProfile:      Get("MAPBOX_PROFILE", "mapbox/driving-traffic"),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		CORSAllowedOrigins: List("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	var err error
	if cfg.LogLevel, err = Level("LOG_LEVEL", slog.LevelInfo); err != nil {
		errs = append(errs, err)
	}
	if cfg.TravelCacheTTL, err = Duration("TRAVEL_CACHE_TTL", 5*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.ShutdownGracePeriod, err = Duration("SHUTDOWN_GRACE_PERIOD", 15*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.MatrixPlaceCeiling, err = Int("MATRIX_PLACE_CEILING", 10); err != nil {
		errs = append(errs, err)
	}
	if cfg.MatrixConcurrency, err = Int("MATRIX_CONCURRENCY", 4); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitBurst, err = Int("RATE_LIMIT_BURST", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.MapboxRatePerSecond, err = Float("MAPBOX_RATE_LIMIT_PER_SECOND", 5); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitPerSecond, err = Float("RATE_LIMIT_PER_SECOND", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.MetricsEnabled, err = Bool("METRICS_ENABLED", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.TracingEnabled, err = Bool("TRACING_ENABLED", false); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Int(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func Float(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}

func Bool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}

func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

func Level(key string, fallback slog.Level) (slog.Level, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return fallback, fmt.Errorf("%s: %q is not a log level", key, v)
	}
	return l, nil
}

// List splits a comma-separated value, dropping blanks.
func List(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
