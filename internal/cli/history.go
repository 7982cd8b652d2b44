package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/engine"
)

var undoCmd = &cobra.Command{
	Use:   "undo <dataset>",
	Short: "Revert the last merge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Undo(context.Background(), &engine.UndoRequest{Path: args[0]})
		if err != nil {
			return err
		}
		return render(result, func() error {
			printHistory("Reverted", result)
			return nil
		})
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo <dataset>",
	Short: "Re-apply the last reverted merge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Redo(context.Background(), &engine.RedoRequest{Path: args[0]})
		if err != nil {
			return err
		}
		return render(result, func() error {
			printHistory("Re-applied", result)
			return nil
		})
	},
}

func printHistory(verb string, r *engine.HistoryResult) {
	PrintSuccess(fmt.Sprintf("%s %q (%s)", verb, r.BatchName, PrintCount(r.Operations, "operation", "operations")))
	PrintLabelValue("Batch", r.BatchID.String())
	PrintLabelValue("Created", r.CreatedAt.Format("2006-01-02 15:04:05"))
	PrintLabelValue("Can undo", fmt.Sprintf("%v", r.CanUndo))
	PrintLabelValue("Can redo", fmt.Sprintf("%v", r.CanRedo))
}
