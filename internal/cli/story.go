package cli

import (
	"github.com/spf13/cobra"

	"wxstory/internal/render"
	"wxstory/internal/story"
)

var (
	storyWhen    string
	storyHorizon string
	storyFocus   string
)

var storyCmd = &cobra.Command{
	Use:   "story [place]",
	Short: "Generate a narrative weather story",
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

		gen := newGenerator(nil)
		result := gen.Generate(cmd.Context(), pack, story.Request{
			Query:   place,
			When:    storyWhen,
			Horizon: storyHorizon,
			Focus:   storyFocus,
			Verbose: verboseFlag,
		})

		out := cmd.OutOrStdout()
		if jsonOut {
			return render.JSON(out, result)
		}
		render.Story(out, result, verboseFlag)
		return nil
	},
}

func init() {
	storyCmd.Flags().StringVar(&storyWhen, "when", "", `time reference (e.g., "tomorrow", "tonight")`)
	storyCmd.Flags().StringVar(&storyHorizon, "horizon", "12h", "time horizon (6h, 12h, 24h, 3d)")
	storyCmd.Flags().StringVar(&storyFocus, "focus", "", `activity focus (e.g., "commuting", "aviation")`)
	rootCmd.AddCommand(storyCmd)
}
