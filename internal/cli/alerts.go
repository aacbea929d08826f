package cli

import (
	"github.com/spf13/cobra"

	"wxstory/internal/render"
	"wxstory/internal/story"
)

var alertsAI bool

var alertsCmd = &cobra.Command{
	Use:   "alerts [place]",
	Short: "Show active weather alerts",
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
			return render.JSON(out, pack.Alerts)
		}

		render.Alerts(out, place, pack.Alerts)

		// AI triage narrates the alerts' practical impact; only worth a
		// model call when there is something to triage.
		if alertsAI && len(pack.Alerts) > 0 && cfg.HasProvider() {
			gen := newGenerator(nil)
			result := gen.Generate(cmd.Context(), pack, story.Request{
				Query:   place,
				Focus:   "triage the active alerts: practical impact and what to do",
				Verbose: verboseFlag,
			})
			render.Story(out, result, verboseFlag)
		}
		return nil
	},
}

func init() {
	alertsCmd.Flags().BoolVar(&alertsAI, "ai", false, "use AI to triage alerts")
	rootCmd.AddCommand(alertsCmd)
}
