// Package xlsx exports a city's year of derived metrics as a spreadsheet.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

const (
	CalendarSheet = "Calendar"
	MonthsSheet   = "Months"
)

var calendarHeaders = []any{
	"Date", "Max °C", "Min °C", "Feels like °C", "Rain %", "Score", "Verdict",
	"Walkability", "Beer garden", "Reliability", "Crowds", "Price", "Sea",
}

var monthHeaders = []any{
	"Month", "Season", "Days", "Avg max °C", "Avg min °C", "Avg rain %",
	"Rainy days", "Score", "Verdict", "Crowds", "Price",
}

// Export writes the year calendar of city to w. Days without data are
// left out.
func Export(w io.Writer, city domain.CityData, opts climate.Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("Climate calendar - %s", city.Meta.Name),
		Subject: "Derived climate metrics",
		Creator: "climate-insights-service",
		Created: domain.Now().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}

	if err := f.SetSheetName("Sheet1", CalendarSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeCalendar(f, city, opts); err != nil {
		return err
	}
	if _, err := f.NewSheet(MonthsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeMonths(f, city, opts); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeCalendar(f *excelize.File, city domain.CityData, opts climate.Options) error {
	if err := writeHeader(f, CalendarSheet, calendarHeaders); err != nil {
		return err
	}
	styles, err := newVerdictStyles(f)
	if err != nil {
		return err
	}

	row := 2
	for _, key := range domain.AllDateKeys() {
		rec, ok := city.Day(key)
		if !ok {
			continue
		}
		m := climate.DeriveRecord(city, key, rec, opts)
		values := []any{
			key.String(), m.TempMax, m.TempMin, m.FeelsLikeC, m.PrecipProb, m.Score,
			string(m.Verdict.Label), m.Walkability, m.BeerGarden, m.Reliability,
			m.Tourism.Crowds, m.Tourism.Price, string(m.MarineStatus),
		}
		if err := setRow(f, CalendarSheet, row, values); err != nil {
			return err
		}
		cell := cellName(7, row)
		if err := f.SetCellStyle(CalendarSheet, cell, cell, styles[m.Verdict.Label]); err != nil {
			return fmt.Errorf("style verdict: %w", err)
		}
		row++
	}
	if row > 2 {
		ref := fmt.Sprintf("A1:%s", cellName(len(calendarHeaders), row-1))
		if err := f.AutoFilter(CalendarSheet, ref, nil); err != nil {
			return fmt.Errorf("auto filter: %w", err)
		}
	}
	return nil
}

func writeMonths(f *excelize.File, city domain.CityData, opts climate.Options) error {
	if err := writeHeader(f, MonthsSheet, monthHeaders); err != nil {
		return err
	}
	row := 2
	for month := time.January; month <= time.December; month++ {
		s, ok := climate.SummarizeMonth(city, month, opts.Fallback)
		if !ok {
			continue
		}
		values := []any{
			s.Name, s.Season, s.Days, s.AvgMax, s.AvgMin, s.AvgRainProb,
			s.RainyDays, s.AvgScore, s.TravelVerdict, s.Tourism.Crowd, s.Tourism.Price,
		}
		if err := setRow(f, MonthsSheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []any) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	last := cellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(sheet, "A", lastCol, 13); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return nil
}

func newVerdictStyles(f *excelize.File) (map[climate.VerdictLabel]int, error) {
	colors := map[climate.VerdictLabel]string{
		climate.VerdictYes:   "#C6EFCE",
		climate.VerdictMaybe: "#FFEB9C",
		climate.VerdictNo:    "#FFC7CE",
	}
	styles := make(map[climate.VerdictLabel]int, len(colors))
	for label, color := range colors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("verdict style: %w", err)
		}
		styles[label] = id
	}
	return styles, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
