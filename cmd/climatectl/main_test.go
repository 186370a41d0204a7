package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtures = "../../internal/pipeline/testdata/cities"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var c cli
	parser, err := kong.New(&c, kong.Name("climatectl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	c.Globals.ctx = context.Background()
	c.Globals.out = &out
	c.Globals.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	err = kctx.Run(&c.Globals)
	return out.String(), err
}

func TestDay(t *testing.T) {
	out, err := run(t, "--data-dir", fixtures, "day", "lisbon", "06-15")
	require.NoError(t, err)

	var report struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Contains(t, report.ID, "lisbon-06-15-")
	assert.Equal(t, "06-15", report.Date)
}

func TestDay_Errors(t *testing.T) {
	_, err := run(t, "--data-dir", fixtures, "day", "lisbon", "13-01")
	require.Error(t, err)

	_, err = run(t, "--data-dir", fixtures, "day", "atlantis", "06-15")
	require.Error(t, err)
}

func TestMonth_UnknownName(t *testing.T) {
	_, err := run(t, "--data-dir", fixtures, "month", "lisbon", "Juneuary")
	require.ErrorContains(t, err, "unknown month")
}

func TestImportThenReadFromSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "climate.db")

	out, err := run(t, "--data-dir", fixtures, "import", "--to", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 cities")

	out, err = run(t, "--sqlite", db, "narrate", "lisbon", "06-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon")
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lisbon.xlsx")

	_, err := run(t, "--data-dir", fixtures, "export", "lisbon", "-o", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
