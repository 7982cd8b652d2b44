package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/engine"
)

var hideCmd = &cobra.Command{
	Use:   "hide <dataset>",
	Short: "Hide existing buildings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetFilter(args[0], true)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <dataset>",
	Short: "Show existing buildings",
	Long: `Switch the clean-slate filter off so existing buildings are visible again.
The filter comes back on after the next merge.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetFilter(args[0], false)
	},
}

func runSetFilter(path string, enabled bool) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.SetFilter(context.Background(), &engine.FilterRequest{Path: path, Enabled: enabled})
	if err != nil {
		return err
	}

	return render(result, func() error {
		if enabled {
			PrintSuccess(fmt.Sprintf("Hiding %s", PrintCount(result.Counts.Hidden, "footprint", "footprints")))
		} else {
			PrintSuccess("Showing all footprints")
		}
		PrintLabelValue("Filter", result.Filter.Text)
		return nil
	})
}
