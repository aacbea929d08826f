package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"wxstory/internal/weather"
)

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	return table
}

// Forecast writes the period list as a table.
func Forecast(w io.Writer, location string, periods []weather.ForecastPeriod) {
	fmt.Fprintf(w, "\nForecast for %s\n\n", location)
	if len(periods) == 0 {
		fmt.Fprintln(w, "No forecast periods available.")
		return
	}

	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		wind := strings.TrimSpace(p.WindDirection + " " + p.WindSpeed)
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d°%s", p.Temperature, p.TemperatureUnit),
			wind,
			p.ShortForecast,
		})
	}

	table := newTable(w, []string{"Period", "Temp", "Wind", "Forecast"})
	table.Bulk(rows)
	table.Render()
	fmt.Fprintln(w)
}

// WorldRow is one city line of the world overview.
type WorldRow struct {
	City       string
	Conditions string
	Temp       string
	Alerts     int
}

// World writes the multi-city overview table.
func World(w io.Writer, rows []WorldRow) {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		alerts := "-"
		if r.Alerts > 0 {
			alerts = fmt.Sprintf("%d", r.Alerts)
		}
		cells = append(cells, []string{r.City, r.Conditions, r.Temp, alerts})
	}

	table := newTable(w, []string{"City", "Conditions", "Temp", "Alerts"})
	table.Bulk(cells)
	table.Render()
	fmt.Fprintln(w)
}
