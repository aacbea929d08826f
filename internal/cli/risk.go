package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wxstory/internal/render"
	"wxstory/internal/story"
)

var riskHazards string

var riskCmd = &cobra.Command{
	Use:   "risk [place]",
	Short: "Assess weather risk for a location",
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

		focus := "risk assessment"
		if riskHazards != "" {
			focus = fmt.Sprintf("risk assessment for hazards: %s", riskHazards)
		}

		gen := newGenerator(nil)
		result := gen.Generate(cmd.Context(), pack, story.Request{
			Query:   place,
			Focus:   focus,
			Verbose: verboseFlag,
		})
		render.Story(out, result, verboseFlag)
		return nil
	},
}

func init() {
	riskCmd.Flags().StringVar(&riskHazards, "hazards", "", "comma-separated hazards to assess")
	rootCmd.AddCommand(riskCmd)
}
