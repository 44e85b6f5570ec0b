package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	sq "github.com/Masterminds/squirrel"
)

// PostgreSQL-backed implementation of the CityRepository port.
type PostgresCityRepository struct {
	db     Querier
	logger *slog.Logger
}

func NewPostgresCityRepository(db Querier, logger *slog.Logger) *PostgresCityRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCityRepository{db: db, logger: logger}
}

// Return the cities with the given ids. Unknown ids are silently absent.
func (r *PostgresCityRepository) FindCitiesByIDs(ctx context.Context, ids []string) (_ []domain.City, err error) {
	defer obs.Time(ctx, r.logger, "cities.FindCitiesByIDs")(&err)

	if r.db == nil {
		return nil, errors.New("postgres city repository: db is nil")
	}
	if len(ids) == 0 {
		return []domain.City{}, nil
	}

	query, args, err := psql.
		Select("id", "name").
		From("cities").
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("find cities: build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, len(ids))
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("find cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find cities: row iteration: %w", err)
	}

	return cities, nil
}
