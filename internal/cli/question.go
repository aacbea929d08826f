package cli

import (
	"github.com/spf13/cobra"

	"wxstory/internal/render"
	"wxstory/internal/story"
)

// runQuestion answers a freeform question. The question doubles as the
// geocoding query unless the active profile supplies a default location.
func runQuestion(cmd *cobra.Command, question string) error {
	place, err := defaultLocation(nil)
	if err != nil {
		place = question
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
		Query:   question,
		Verbose: verboseFlag,
	})

	out := cmd.OutOrStdout()
	if jsonOut {
		return render.JSON(out, result)
	}
	render.Story(out, result, verboseFlag)
	return nil
}
