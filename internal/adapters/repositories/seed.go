package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"trip-planner-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool and pgxmock.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type namedSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type placeSeed struct {
	domain.Place
	CategoryID string `json:"categoryId"`
}

// Seed is the JSON document loaded by dbtool.
type Seed struct {
	Cities     []namedSeed `json:"cities"`
	Categories []namedSeed `json:"categories"`
	Places     []placeSeed `json:"places"`
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(b []byte) (*Seed, error) {
	var s Seed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	for i := range s.Cities {
		if err := s.Cities[i].validate("city", i); err != nil {
			return nil, err
		}
	}
	for i := range s.Categories {
		if err := s.Categories[i].validate("category", i); err != nil {
			return nil, err
		}
	}
	for i := range s.Places {
		p := &s.Places[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("parse seed: place at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("parse seed: place %q: name cannot be empty", p.ID)
		}
		if p.CityID == "" && p.City == "" {
			return nil, fmt.Errorf("parse seed: place %q: cityId or city is required", p.ID)
		}
		for _, oh := range p.OpeningHoursWeekly {
			if oh.Day < 0 || oh.Day > 6 {
				return nil, fmt.Errorf("parse seed: place %q: invalid opening day %d", p.ID, oh.Day)
			}
		}
	}

	return &s, nil
}

func (n *namedSeed) validate(kind string, i int) error {
	n.ID = strings.TrimSpace(n.ID)
	n.Name = strings.TrimSpace(n.Name)
	if n.ID == "" || n.Name == "" {
		return fmt.Errorf("parse seed: %s at index %d: id and name are required", kind, i+1)
	}
	return nil
}

// SeedFromJSON upserts cities, categories and places from a JSON file in one transaction.
func SeedFromJSON(ctx context.Context, db TxBeginner, jsonPath string) error {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	seed, err := ParseSeed(b)
	if err != nil {
		return err
	}

	return WriteSeed(ctx, db, seed)
}

func WriteSeed(ctx context.Context, db TxBeginner, seed *Seed) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsertCity = `
	INSERT INTO cities (id, name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;
	`
	for _, c := range seed.Cities {
		if _, err := tx.Exec(ctx, upsertCity, c.ID, c.Name); err != nil {
			return fmt.Errorf("seed: insert city id=%s: %w", c.ID, err)
		}
	}

	const upsertCategory = `
	INSERT INTO categories (id, name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;
	`
	for _, c := range seed.Categories {
		if _, err := tx.Exec(ctx, upsertCategory, c.ID, c.Name); err != nil {
			return fmt.Errorf("seed: insert category id=%s: %w", c.ID, err)
		}
	}

	const upsertPlace = `
	INSERT INTO places (
		id,
		name,
		category_id,
		city_id,
		city,
		average_rating,
		number_of_ratings,
		latitude,
		longitude,
		opening_hours
	)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		category_id = EXCLUDED.category_id,
		city_id = EXCLUDED.city_id,
		city = EXCLUDED.city,
		average_rating = EXCLUDED.average_rating,
		number_of_ratings = EXCLUDED.number_of_ratings,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		opening_hours = EXCLUDED.opening_hours;
	`
	for _, p := range seed.Places {
		hours := p.OpeningHoursWeekly
		if hours == nil {
			hours = []domain.OpeningHours{}
		}
		hoursJSON, err := json.Marshal(hours)
		if err != nil {
			return fmt.Errorf("seed: encode opening hours for place id=%s: %w", p.ID, err)
		}

		if _, err := tx.Exec(ctx, upsertPlace,
			p.ID,
			p.Name,
			p.CategoryID,
			p.CityID,
			p.City,
			p.Ratings.AverageRating,
			p.Ratings.NumberOfRatings,
			p.Location.Latitude,
			p.Location.Longitude,
			string(hoursJSON),
		); err != nil {
			return fmt.Errorf("seed: insert place id=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
