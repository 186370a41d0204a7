// Command climatectl answers climate questions from a local city dataset
// and manages that dataset.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/climate-insights-service/internal/adapter/filestore"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/sqlite"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

type Globals struct {
	DataDir  string `name:"data-dir" default:"data" env:"DATA_DIR" help:"Directory of {slug}.json city files."`
	SQLite   string `name:"sqlite" env:"SQLITE_PATH" help:"Read cities from this SQLite database instead of --data-dir."`
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level."`

	ctx    context.Context `kong:"-"`
	out    io.Writer       `kong:"-"`
	logger *slog.Logger    `kong:"-"`
}

type cli struct {
	Globals

	Day          dayCmd          `cmd:"" help:"Derive the metrics for one city and date."`
	Alternatives alternativesCmd `cmd:"" help:"Find better dates within a week of a date."`
	Compare      compareCmd      `cmd:"" help:"Rank other cities on the same date."`
	Month        monthCmd        `cmd:"" help:"Summarize one month for a city."`
	City         cityCmd         `cmd:"" help:"Show the yearly overview for a city."`
	Narrate      narrateCmd      `cmd:"" help:"Describe a day in a few sentences."`
	Export       exportCmd       `cmd:"" help:"Write a city's calendar to an Excel workbook."`
	Import       importCmd       `cmd:"" help:"Copy every city in --data-dir into a SQLite database."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("climatectl"),
		kong.Description("Climate insights from historical daily data."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.Globals.ctx = ctx
	c.Globals.out = os.Stdout
	c.Globals.logger = sharedobs.NewLogger(c.LogLevel, "text")

	kctx.FatalIfErrorf(kctx.Run(&c.Globals))
}

// repository opens the configured dataset. The returned func releases it.
func (g *Globals) repository() (domain.CityRepository, func(), error) {
	if g.SQLite == "" {
		return filestore.New(g.DataDir), func() {}, nil
	}
	store, err := sqlite.Open(g.ctx, g.SQLite, g.logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (g *Globals) service() (*insights.Service, func(), error) {
	repo, closeRepo, err := g.repository()
	if err != nil {
		return nil, nil, err
	}
	return insights.NewService(repo, insights.Options{}, observability.NewUnregisteredMetrics(), g.logger), closeRepo, nil
}

func (g *Globals) print(v any) error {
	enc := json.NewEncoder(g.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDate(s string) (domain.DateKey, error) {
	key, err := domain.ParseDateKey(s)
	if err != nil {
		return domain.DateKey{}, fmt.Errorf("date %q: %w", s, err)
	}
	return key, nil
}
