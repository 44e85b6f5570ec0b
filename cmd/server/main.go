package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/distance"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (PostgreSQL, Mapbox, cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdownTracing, err := obs.SetupTracing(os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("flush spans", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled; spans are written to stderr")
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	places := repositories.NewPostgresPlaceRepository(pool, logger)
	cities := repositories.NewPostgresCityRepository(pool, logger)

	opts := []services.GeneratorOption{services.WithMatrixConcurrency(cfg.MatrixConcurrency)}

	provider, closeCache, err := newTravelTimeProvider(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()
	if provider != nil {
		opts = append(opts, services.WithTravelTimes(provider, cfg.MapboxProfile, cfg.MatrixPlaceCeiling))
	} else {
		logger.Warn("MAPBOX_ACCESS_TOKEN not set; travel times use distance estimates only")
	}

	generator := services.NewGenerator(places, cities, logger, opts...)

	router := api.NewRouter(generator, places, logger, api.RouterOptions{
		MetricsEnabled:     cfg.MetricsEnabled,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
	})

	// Timeouts are tuned for cold-cache matrix lookups (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("grace", cfg.ShutdownGracePeriod))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newTravelTimeProvider returns nil when no Mapbox token is configured.
// The returned close func releases the cache backend.
func newTravelTimeProvider(cfg config.Config, logger *slog.Logger) (ports.TravelTimeProvider, func(), error) {
	noop := func() {}

	if cfg.MapboxToken == "" {
		return nil, noop, nil
	}

	var travelCache ports.TravelTimeCache
	closeCache := noop

	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		client := redis.NewClient(redisOpts)
		travelCache = cache.NewRedisTravelTimeCache(client, logger)
		closeCache = func() { _ = client.Close() }
		logger.Info("travel time cache: redis", slog.String("addr", redisOpts.Addr))
	} else {
		travelCache = cache.NewMemoryTravelTimeCache(cfg.TravelCacheTTL, 2*cfg.TravelCacheTTL)
	}

	provider, err := distance.NewMapboxProvider(cfg.MapboxToken,
		distance.WithBaseURL(cfg.MapboxBaseURL),
		distance.WithCache(travelCache, cfg.TravelCacheTTL),
		distance.WithRateLimit(cfg.MapboxRatePerSecond),
		distance.WithLogger(logger),
	)
	if err != nil {
		closeCache()
		return nil, noop, err
	}

	return provider, closeCache, nil
}
