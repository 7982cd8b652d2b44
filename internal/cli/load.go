package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/engine"
)

var loadCmd = &cobra.Command{
	Use:   "load <dataset>",
	Short: "Open a dataset and hide its existing buildings",
	Long: `Open a GeoJSON dataset and start its editing session.

Existing buildings are hidden by the clean-slate filter so new outlines can be
traced without them in the way. Loading a dataset that changed since its last
session discards the undo history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Load(context.Background(), &engine.LoadRequest{Path: args[0]})
		if err != nil {
			return err
		}

		return render(result, func() error {
			if result.Created {
				PrintSuccess(fmt.Sprintf("Started session for %s", result.Path))
			} else {
				PrintSuccess(fmt.Sprintf("Resumed session for %s", result.Path))
			}
			if result.Reset {
				PrintWarning("Dataset changed outside cleanslate; undo history discarded")
			}
			printCounts(result.Counts)
			return nil
		})
	},
}

// printCounts prints the dataset counters.
func printCounts(c engine.DatasetCounts) {
	PrintLabelValue("Footprints", fmt.Sprintf("%d", c.Footprints))
	PrintLabelValue("New buildings", fmt.Sprintf("%d", c.NewBuildings))
	PrintLabelValue("Existing buildings", fmt.Sprintf("%d", c.OldBuildings))
	PrintLabelValue("Hidden", fmt.Sprintf("%d", c.Hidden))
}
