// Package sqlite stores city documents in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Store implements domain.CityRepository over a cities table. The full
// document is kept as JSON; the scalar columns serve listings.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New wraps an open database.
func New(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Open opens the database at path and applies migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	s := New(db, logger)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) City(ctx context.Context, slug string) (domain.CityData, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM cities WHERE slug = ?`, slug).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CityData{}, fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	if err != nil {
		return domain.CityData{}, fmt.Errorf("query city %s: %w", slug, err)
	}
	return domain.DecodeCity([]byte(payload), slug)
}

func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM cities ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// Locations lists the coordinates of every stored city.
func (s *Store) Locations(ctx context.Context) ([]domain.CityLocation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, name, country, lat, lon FROM cities ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []domain.CityLocation
	for rows.Next() {
		var loc domain.CityLocation
		var country sql.NullString
		if err := rows.Scan(&loc.Slug, &loc.Name, &country, &loc.Point.Lat, &loc.Point.Lon); err != nil {
			return nil, err
		}
		loc.Country = country.String
		out = append(out, loc)
	}
	return out, rows.Err()
}

// Import inserts or replaces a city document.
func (s *Store) Import(ctx context.Context, c domain.CityData) error {
	if !domain.ValidSlug(c.Slug) {
		return fmt.Errorf("import city: invalid slug %q", c.Slug)
	}
	payload, err := domain.EncodeCity(c)
	if err != nil {
		return fmt.Errorf("encode city %s: %w", c.Slug, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cities (slug, name, country, lat, lon, is_coastal, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			lat = excluded.lat,
			lon = excluded.lon,
			is_coastal = excluded.is_coastal,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, c.Slug, c.Meta.Name, c.Meta.Country, c.Meta.Lat, c.Meta.Lon, c.Meta.IsCoastal, string(payload), domain.Now())
	if err != nil {
		return fmt.Errorf("import city %s: %w", c.Slug, err)
	}
	return nil
}
