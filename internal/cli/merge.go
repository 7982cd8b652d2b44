package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/engine"
	"github.com/danieljhkim/cleanslate/internal/planner"
)

var (
	mergeDryRun bool
	mergeStrict bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <dataset>",
	Short: "Merge traced buildings into the existing buildings they overlap",
	Long: `Match every newly traced building to the existing building it overlaps most
and move the traced outline onto that building, keeping its ID and tags. The
traced copy is removed. All edits are applied as one undoable batch.

A traced building whose best match was already claimed is left in place and
reported as a conflict. Use --strict to refuse to merge when there are
conflicts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.MergeRequest{
			Path:   args[0],
			DryRun: mergeDryRun,
			Strict: mergeStrict,
		}

		outcome, err := eng.Merge(context.Background(), req)
		if err != nil {
			if outcome != nil && errors.Is(err, engine.ErrConflict) {
				printConflicts(outcome.Result.Plan.Conflicts)
				fmt.Println()
				PrintWarning("Resolve the conflicts or run without --strict.")
			}
			return err
		}

		return render(outcome, func() error {
			if outcome.Reset {
				PrintWarning("Dataset changed outside cleanslate; undo history discarded")
			}

			result := outcome.Result
			if mergeDryRun {
				PrintSection("Dry Run")
				PrintInfo(fmt.Sprintf("Would apply %s", PrintCount(len(result.Plan.Operations), "operation", "operations")))
				printOperations(result.Plan.Operations)
				printConflicts(result.Plan.Conflicts)
				return nil
			}

			if outcome.Applied {
				PrintSuccess(result.Summary.Message())
			} else {
				PrintInfo(result.Summary.Message())
			}
			if result.Summary.FailedPairs > 0 {
				PrintWarning(fmt.Sprintf("%s could not be scored", PrintCount(result.Summary.FailedPairs, "pair", "pairs")))
			}
			printConflicts(result.Plan.Conflicts)
			return nil
		})
	},
}

func printOperations(ops []planner.Operation) {
	if len(ops) == 0 {
		return
	}
	PrintSubsection("Operations:")
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		source := ""
		if op.SourceID != 0 {
			source = strconv.FormatInt(op.SourceID, 10)
		}
		rows = append(rows, []string{op.Type, strconv.FormatInt(op.TargetID, 10), source})
	}
	PrintTable([]string{"TYPE", "TARGET", "SOURCE"}, rows)
}

func printConflicts(conflicts []planner.Conflict) {
	if len(conflicts) == 0 {
		return
	}
	PrintSection("Conflicts")
	for _, c := range conflicts {
		PrintError(fmt.Sprintf("%d: %s", c.NewID, c.Reason))
	}
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Show the planned edits without applying them")
	mergeCmd.Flags().BoolVar(&mergeStrict, "strict", false, "Refuse to merge when conflicts are detected")
}
