package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/places.json"), "seed JSON file")
	skipSeed := flag.Bool("skip-seed", false, "only apply migrations")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		slog.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("Applying migrations...")
	sqlDB := stdlib.OpenDBFromPool(pool)
	err = repositories.Migrate(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		slog.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Schema ready.")

	if *skipSeed {
		return
	}

	slog.Info("Seeding database...", slog.String("path", *seedPath))
	if err := repositories.SeedFromJSON(ctx, pool, *seedPath); err != nil {
		slog.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Seeding complete.")
}
