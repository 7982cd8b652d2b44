package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status <dataset>",
	Short: "Show dataset and session status",
	Long:  `Display the clean-slate filter, building counts and undo history of a dataset.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Status(context.Background(), &engine.StatusRequest{Path: args[0]})
		if err != nil {
			return err
		}

		return render(result, func() error {
			PrintLabelValue("Dataset", result.Path)
			if !result.HasSession {
				PrintEmptyState("No session yet; run 'cleanslate load' first")
			}
			if !result.InSync {
				PrintLabelValueWithColor("In sync", "no (changed outside cleanslate)", warningColor)
			}
			switch {
			case !result.HasFilter:
				PrintLabelValue("Clean slate", "absent")
			case result.Filter.Enabled:
				PrintLabelValueWithColor("Clean slate", "hiding existing buildings", successColor)
			default:
				PrintLabelValueWithColor("Clean slate", "showing existing buildings", warningColor)
			}
			printCounts(result.Counts)
			PrintLabelValue("Undo", fmt.Sprintf("%d", result.Undo))
			PrintLabelValue("Redo", fmt.Sprintf("%d", result.Redo))
			if !result.UpdatedAt.IsZero() {
				PrintLabelValue("Updated", result.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		})
	},
}
