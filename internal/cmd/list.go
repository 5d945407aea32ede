package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/graph"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List work items",
	Long: `List the backlog with status, priority, and dependencies.

Use --status to filter by lifecycle state and --ready to show only items
whose dependencies are all complete.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := newStore(cmd)

	items, err := s.LoadWorkItems(cmd.Context())
	if err != nil {
		return err
	}

	statusFilter, _ := cmd.Flags().GetString("status")
	var filter domain.Status
	if statusFilter != "" {
		filter, err = domain.NewStatus(statusFilter)
		if err != nil {
			return err
		}
	}

	readyOnly, _ := cmd.Flags().GetBool("ready")
	ready := map[domain.ItemID]struct{}{}
	if readyOnly {
		ids, err := graph.Unblocked(items)
		if err != nil {
			return err
		}
		for _, id := range ids {
			ready[id] = struct{}{}
		}
	}

	report := loadReportIfAny(cmd)
	st := newStyles(cmd)
	out := cmd.OutOrStdout()

	shown := 0
	walk(items, func(item *task.WorkItem) {
		if filter != "" && item.Status != filter {
			return
		}
		if readyOnly {
			if _, ok := ready[item.ID]; !ok {
				return
			}
		}
		if entry := report.Entry(item.ID); entry != nil {
			entry.Annotate(item)
		}
		indent := ""
		if item.ID.IsSubtask() {
			indent = "  "
		}
		fmt.Fprintf(out, "%s%s %s  %s\n",
			indent,
			st.header.Render(fmt.Sprintf("%-6s", item.ID)),
			st.statusStyle(item.Status).Render(fmt.Sprintf("%-12s", item.Status)),
			item.Title)
		shown++
	})

	if shown == 0 {
		fmt.Fprintln(out, st.label.Render("No matching items."))
	}
	return nil
}

// walk visits every top-level item and its subtasks in file order.
func walk(items []task.WorkItem, visit func(*task.WorkItem)) {
	for i := range items {
		visit(&items[i])
		for j := range items[i].Subtasks {
			visit(&items[i].Subtasks[j])
		}
	}
}

func init() {
	listCmd.Flags().String("status", "", "only show items with this status")
	listCmd.Flags().Bool("ready", false, "only show items whose dependencies are complete")
	rootCmd.AddCommand(listCmd)
}
