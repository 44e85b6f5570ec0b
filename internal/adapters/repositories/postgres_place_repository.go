package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Querier is the read surface shared by *pgxpool.Pool, pgx.Tx and pgxmock.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgreSQL-backed implementation of the PlaceRepository port.
type PostgresPlaceRepository struct {
	db     Querier
	logger *slog.Logger
}

func NewPostgresPlaceRepository(db Querier, logger *slog.Logger) *PostgresPlaceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPlaceRepository{db: db, logger: logger}
}

// Return places whose city id or raw city name matches, optionally restricted
// to selectedIDs. Results are ordered by id so callers see a stable input order.
func (r *PostgresPlaceRepository) FindPlaces(
	ctx context.Context,
	cityIDs, cityNames, selectedIDs []string,
) (_ []domain.Place, err error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "FindPlaces", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "places"),
	))
	defer span.End()
	defer obs.Time(ctx, r.logger, "places.FindPlaces")(&err)

	if r.db == nil {
		return nil, errors.New("postgres place repository: db is nil")
	}
	if len(cityIDs) == 0 && len(cityNames) == 0 {
		return []domain.Place{}, nil
	}

	span.SetAttributes(
		attribute.Int("places.city_ids", len(cityIDs)),
		attribute.Int("places.selected_ids", len(selectedIDs)),
	)

	cityMatch := sq.Or{}
	if len(cityIDs) > 0 {
		cityMatch = append(cityMatch, sq.Eq{"p.city_id": cityIDs})
	}
	if len(cityNames) > 0 {
		cityMatch = append(cityMatch, sq.Eq{"p.city": cityNames})
	}

	builder := psql.
		Select(
			"p.id",
			"p.name",
			"COALESCE(c.name, '')",
			"COALESCE(p.city_id, '')",
			"COALESCE(p.city, '')",
			"p.average_rating",
			"p.number_of_ratings",
			"COALESCE(p.latitude, '')",
			"COALESCE(p.longitude, '')",
			"p.opening_hours",
		).
		From("places p").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(cityMatch).
		OrderBy("p.id")

	if len(selectedIDs) > 0 {
		builder = builder.Where(sq.Eq{"p.id": selectedIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("find places: build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var p domain.Place
		var hours []byte
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.CityID,
			&p.City,
			&p.Ratings.AverageRating,
			&p.Ratings.NumberOfRatings,
			&p.Location.Latitude,
			&p.Location.Longitude,
			&hours,
		)
		if err != nil {
			return nil, fmt.Errorf("find places: scan row: %w", err)
		}

		if len(hours) > 0 {
			if err := json.Unmarshal(hours, &p.OpeningHoursWeekly); err != nil {
				// A bad hours document only loses the per-day windows; defaults still apply.
				r.logger.WarnContext(ctx, "ignoring unreadable opening hours",
					slog.String("place_id", p.ID),
					slog.Any("error", err),
				)
				p.OpeningHoursWeekly = nil
			}
		}

		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find places: row iteration: %w", err)
	}

	span.SetAttributes(attribute.Int("places.found", len(places)))
	return places, nil
}
