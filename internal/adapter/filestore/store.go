// Package filestore reads city documents from a directory of JSON files.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Store implements domain.CityRepository over {dir}/{slug}.json.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) City(ctx context.Context, slug string) (domain.CityData, error) {
	if err := ctx.Err(); err != nil {
		return domain.CityData{}, err
	}
	if !domain.ValidSlug(slug) {
		return domain.CityData{}, fmt.Errorf("%q: %w", slug, domain.ErrCityNotFound)
	}

	b, err := os.ReadFile(filepath.Join(s.dir, slug+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.CityData{}, fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	if err != nil {
		return domain.CityData{}, fmt.Errorf("read city %s: %w", slug, err)
	}
	return domain.DecodeCity(b, slug)
}

// IndexSlug names the slug list published next to city files for HTTP
// sources; it is never a city.
const IndexSlug = "index"

// Slugs lists every *.json file whose name is a valid slug, sorted.
func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	var slugs []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ".json")
		if slug != IndexSlug && domain.ValidSlug(slug) {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Save writes c to {dir}/{slug}.json, creating dir if needed.
func (s *Store) Save(c domain.CityData) error {
	if !domain.ValidSlug(c.Slug) {
		return fmt.Errorf("save city: invalid slug %q", c.Slug)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	b, err := domain.EncodeCity(c)
	if err != nil {
		return fmt.Errorf("encode city %s: %w", c.Slug, err)
	}
	return os.WriteFile(filepath.Join(s.dir, c.Slug+".json"), b, 0o644)
}
