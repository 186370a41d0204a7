package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/climate-insights-service/internal/adapter/filestore"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/sqlite"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/xlsx"
	"github.com/couchcryptid/climate-insights-service/internal/climate"
)

type dayArgs struct {
	City string `arg:"" help:"City slug, e.g. lisbon."`
	Date string `arg:"" help:"Date as MM-DD."`
}

type dayCmd struct {
	dayArgs
}

func (c *dayCmd) Run(g *Globals) error {
	key, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	report, err := svc.Day(g.ctx, c.City, key)
	if err != nil {
		return err
	}
	return g.print(report)
}

type alternativesCmd struct {
	dayArgs
	Limit int `default:"3" help:"Maximum dates to list."`
}

func (c *alternativesCmd) Run(g *Globals) error {
	key, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	alts, err := svc.Alternatives(g.ctx, c.City, key, c.Limit)
	if err != nil {
		return err
	}
	return g.print(alts)
}

type compareCmd struct {
	dayArgs
	Limit int `default:"6" help:"Maximum cities to list."`
}

func (c *compareCmd) Run(g *Globals) error {
	key, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	scores, err := svc.Compare(g.ctx, c.City, key, c.Limit)
	if err != nil {
		return err
	}
	return g.print(scores)
}

type monthCmd struct {
	City  string `arg:"" help:"City slug."`
	Month string `arg:"" help:"Month name, abbreviation or number."`
}

func (c *monthCmd) Run(g *Globals) error {
	month, ok := climate.MonthFromName(c.Month)
	if !ok {
		return fmt.Errorf("unknown month %q", c.Month)
	}
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	report, err := svc.Month(g.ctx, c.City, month)
	if err != nil {
		return err
	}
	return g.print(report)
}

type cityCmd struct {
	City string `arg:"" help:"City slug."`
}

func (c *cityCmd) Run(g *Globals) error {
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	report, err := svc.City(g.ctx, c.City)
	if err != nil {
		return err
	}
	return g.print(report)
}

type narrateCmd struct {
	dayArgs
}

func (c *narrateCmd) Run(g *Globals) error {
	key, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	svc, done, err := g.service()
	if err != nil {
		return err
	}
	defer done()

	n, err := svc.Narrate(g.ctx, c.City, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, n.Text)
	return err
}

type exportCmd struct {
	City string `arg:"" help:"City slug."`
	Out  string `short:"o" required:"" type:"path" help:"Workbook to write (.xlsx)."`
}

func (c *exportCmd) Run(g *Globals) error {
	repo, done, err := g.repository()
	if err != nil {
		return err
	}
	defer done()

	city, err := repo.City(g.ctx, c.City)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	if err := xlsx.Export(f, city, climate.DefaultOptions()); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", c.City, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	g.logger.Info("workbook written", "city", c.City, "path", c.Out)
	return nil
}

type importCmd struct {
	To string `required:"" type:"path" help:"SQLite database to write."`
}

func (c *importCmd) Run(g *Globals) error {
	src := filestore.New(g.DataDir)
	slugs, err := src.Slugs(g.ctx)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(g.ctx, c.To, g.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	imported := 0
	for _, slug := range slugs {
		city, err := src.City(g.ctx, slug)
		if err != nil {
			return fmt.Errorf("read %s: %w", slug, err)
		}
		if err := store.Import(g.ctx, city); err != nil {
			return fmt.Errorf("import %s: %w", slug, err)
		}
		imported++
	}
	_, err = fmt.Fprintf(g.out, "imported %d cities into %s\n", imported, c.To)
	return err
}
