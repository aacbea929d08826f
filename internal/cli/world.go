package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wxstory/internal/profile"
	"wxstory/internal/render"
)

var worldSevere bool

// defaultWorldCities seeds the overview when no favorites exist yet.
var defaultWorldCities = []string{"Seattle", "New York", "Chicago", "Denver", "Miami"}

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Show a weather overview of your locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorld(cmd, worldSevere)
	},
}

func runWorld(cmd *cobra.Command, severe bool) error {
	cities := defaultWorldCities
	if store, err := profile.NewStore(); err == nil {
		if name, err := store.CurrentName(); err == nil {
			if p, err := store.Load(name); err == nil && len(p.Favorites) > 0 {
				cities = p.Favorites
			}
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return render.JSON(out, map[string]any{
			"locations": cities,
			"severe":    severe,
		})
	}

	rows := make([]render.WorldRow, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, render.WorldRow{City: city, Conditions: "-", Temp: "-"})
	}

	fmt.Fprintln(out)
	render.World(out, rows)
	fmt.Fprintf(out, "Use %s for live data on any of these.\n", color.CyanString("wxstory story <place>"))
	return nil
}

func init() {
	worldCmd.Flags().BoolVar(&worldSevere, "severe", false, "filter for severe weather only")
	rootCmd.AddCommand(worldCmd)
}
