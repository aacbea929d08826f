package cli

import (
	"github.com/spf13/cobra"

	"wxstory/internal/render"
	"wxstory/internal/weather"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [place]",
	Short: "Show the forecast for a location",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		place, err := defaultLocation(args)
		if err != nil {
			return err
		}

		svc, err := newService(nil)
		if err != nil {
			return err
		}

		pack, err := svc.Assemble(cmd.Context(), place, cfg.Offline)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return render.JSON(out, pack)
		}

		var periods []weather.ForecastPeriod
		if pack.Forecast != nil {
			periods = pack.Forecast.Periods
		}
		render.Forecast(out, place, periods)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}
