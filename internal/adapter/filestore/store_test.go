package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	city := domain.CityData{
		Slug: "lisbon",
		Meta: domain.CityMeta{Name: "Lisbon", Country: "Portugal"},
		Days: map[string]domain.DayRecord{"06-15": {Stats: domain.DayStats{TempMax: 27}}},
	}
	require.NoError(t, s.Save(city))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad Name.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte(`["lisbon"]`), 0o644))

	got, err := s.City(context.Background(), "lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Meta.Name)
	assert.InDelta(t, 27, got.Days["06-15"].Stats.TempMax, 1e-9)

	slugs, err := s.Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lisbon"}, slugs)
}

func TestStore_NotFound(t *testing.T) {
	s := New(t.TempDir())

	for _, slug := range []string{"atlantis", "../secrets", ""} {
		_, err := s.City(context.Background(), slug)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCityNotFound), slug)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))

	_, err := New(dir).City(context.Background(), "broken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Slugs(context.Background())
	require.Error(t, err)
}
