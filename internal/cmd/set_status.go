package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/cascade"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/log"
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Change an item's status and cascade to its requirement",
	Long: `Set the lifecycle status of a task or subtask.

After the change, the owning requirement document's status is re-derived
from all of its items: done when every item is done, pending when none has
started, in-progress otherwise. Archived requirements are never touched.`,
	RunE: runSetStatus,
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	rawID, _ := cmd.Flags().GetString("id")
	rawStatus, _ := cmd.Flags().GetString("status")

	id, err := domain.ParseItemID(rawID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTaskInvalid, fmt.Sprintf("invalid item id %q", rawID), err)
	}
	status, err := domain.NewStatus(rawStatus)
	if err != nil {
		return err
	}

	s := newStore(cmd)
	ctx := cmd.Context()

	if err := s.ApplyStatusChange(ctx, id, status); err != nil {
		return err
	}

	st := newStyles(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s → %s\n", st.ok.Render("Updated."), id, st.statusStyle(status).Render(status.String()))

	// Re-derive requirement status from the post-change item set.
	items, err := s.LoadWorkItems(ctx)
	if err != nil {
		return err
	}
	reqs, err := s.LoadRequirements(ctx)
	if err != nil {
		return err
	}

	changes := cascade.Cascade([]domain.ItemID{id}, status, items, reqs)
	if len(changes) == 0 {
		return nil
	}
	if err := s.ApplyRequirementChanges(ctx, changes); err != nil {
		return err
	}

	for _, change := range changes {
		log.DefaultLogger().Info("requirement status cascaded",
			"requirement", change.RequirementID,
			"from", change.PreviousStatus,
			"to", change.NewStatus)
		fmt.Fprintf(out, "%s requirement %s: %s → %s\n",
			st.header.Render("Cascaded."), change.RequirementID, change.PreviousStatus, change.NewStatus)
	}
	return nil
}

func init() {
	setStatusCmd.Flags().String("id", "", "item id (task number or dotted subtask id like 5.1)")
	setStatusCmd.Flags().String("status", "", "new status (pending, in-progress, done, review, blocked, deferred, cancelled)")
	_ = setStatusCmd.MarkFlagRequired("id")
	_ = setStatusCmd.MarkFlagRequired("status")
	rootCmd.AddCommand(setStatusCmd)
}
