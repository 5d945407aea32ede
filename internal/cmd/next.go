package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/selector"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next actionable work item",
	Long: `Pick the single next item to work on.

Subtasks of in-progress parents take precedence over new top-level tasks.
Within each pool, ties break by requirement urgency, priority weight,
dependency count, and numeric id, so the answer is stable for a given
backlog state.`,
	RunE: runNext,
}

func runNext(cmd *cobra.Command, args []string) error {
	s := newStore(cmd)

	items, err := s.LoadWorkItems(cmd.Context())
	if err != nil {
		return err
	}
	report := loadReportIfAny(cmd)

	item, err := selector.Next(items, report)
	if err != nil {
		return err
	}

	st := newStyles(cmd)
	if item == nil {
		fmt.Fprintln(cmd.OutOrStdout(), st.warn.Render("No actionable items: everything is done, blocked, or waiting on dependencies."))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), renderItem(st, item))
	return nil
}

func init() {
	rootCmd.AddCommand(nextCmd)
}
