package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/complexity"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/expand"
	"github.com/Interstellar-code/taskmaster/internal/log"
	"github.com/Interstellar-code/taskmaster/internal/store"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Decompose complex items into subtasks",
	Long: `Run the expansion pipeline: assess every item without subtasks,
pick the ones above the complexity threshold, and decompose each into
subtasks, most complex first.

A prior 'taskmaster analyze' report steers the run; without one the
heuristic scorer decides. Single-item failures are recorded and the run
continues. Use --id to force-expand one item regardless of its score.`,
	RunE: runExpand,
}

// reportAnalyzer satisfies the analysis contract by serving a complexity
// report already on disk. A missing report is a failed analysis, which
// degrades the run to heuristic scoring rather than aborting it.
type reportAnalyzer struct {
	path string
}

func (a reportAnalyzer) Analyze(_ context.Context, _ []task.WorkItem) (*task.ComplexityReport, error) {
	return task.LoadReport(a.path)
}

func runExpand(cmd *cobra.Command, args []string) error {
	scorer, err := complexity.NewScorer(complexity.DefaultConfig())
	if err != nil {
		return err
	}

	s := newStore(cmd)
	items, err := s.LoadWorkItems(cmd.Context())
	if err != nil {
		return err
	}

	if forceID, _ := cmd.Flags().GetString("id"); forceID != "" {
		return expandSingle(cmd, s, scorer, items, forceID)
	}

	reportPath, _ := cmd.Flags().GetString("report")
	maxItems, _ := cmd.Flags().GetInt("max")

	orchestrator := expand.New(
		reportAnalyzer{path: reportPath},
		expand.NewOutlineDecomposer(),
		scorer,
		log.DefaultLogger(),
	)

	run := orchestrator.Run(cmd.Context(), items, expand.Options{
		AutoExpand: true,
		MaxItems:   maxItems,
	})

	for _, result := range run.Items {
		if result.State != expand.ItemExpanded {
			continue
		}
		if err := s.ApplyNewSubtasks(cmd.Context(), result.ItemID, result.Subtasks); err != nil {
			return err
		}
	}

	printRunReport(cmd, run)
	if run.Cancelled {
		return context.Canceled
	}
	return nil
}

// expandSingle decomposes one item on demand, bypassing the threshold.
func expandSingle(cmd *cobra.Command, s *store.FileStore, scorer *complexity.Scorer, items []task.WorkItem, rawID string) error {
	id, err := domain.ParseItemID(rawID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTaskInvalid, fmt.Sprintf("invalid item id %q", rawID), err)
	}

	item, ok := task.Index(items)[id]
	if !ok {
		return errors.New(errors.ErrCodeTaskNotFound, fmt.Sprintf("item %s not found", id))
	}
	if item.HasSubtasks() {
		return errors.New(errors.ErrCodeTaskInvalid,
			fmt.Sprintf("item %s already has subtasks", id)).
			WithSuggestion("Work the existing subtasks or remove them before re-expanding")
	}

	assessment := scorer.Assess(item, loadReportIfAny(cmd))
	directive := expand.Directive{
		ItemID:         id,
		TargetSubtasks: assessment.RecommendedSubtasks,
		Reasoning:      assessment.Reasoning,
	}

	subtasks, err := expand.NewOutlineDecomposer().Decompose(cmd.Context(), item, directive)
	if err != nil {
		return errors.NewDecompositionError(id.String(), err)
	}
	if err := s.ApplyNewSubtasks(cmd.Context(), id, subtasks); err != nil {
		return err
	}

	st := newStyles(cmd)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s split into %d subtasks\n",
		st.ok.Render("Expanded."), id, len(subtasks))
	return nil
}

func printRunReport(cmd *cobra.Command, run *expand.RunReport) {
	st := newStyles(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s run %s\n", st.title.Render("Expansion"), run.RunID)
	for _, result := range run.Items {
		switch result.State {
		case expand.ItemExpanded:
			fmt.Fprintf(out, "  %s %-6s %.1f/10 → %d subtasks (%s)\n",
				st.ok.Render("✓"), result.ItemID, result.Score, len(result.Subtasks), result.Method)
		case expand.ItemFailed:
			fmt.Fprintf(out, "  %s %-6s %s\n",
				st.fail.Render("✗"), result.ItemID, result.Error)
		default:
			fmt.Fprintf(out, "  %s %-6s %s\n",
				st.label.Render("•"), result.ItemID, result.State)
		}
	}

	summary := fmt.Sprintf("%d candidates, %d expanded, %d failed, %d subtasks created",
		run.Candidates, run.Expanded, run.Failed, run.SubtasksCreated)
	if run.Cancelled {
		summary += " (cancelled)"
	}
	fmt.Fprintf(out, "%s\n", st.header.Render(summary))

	if run.AnalysisError != "" {
		fmt.Fprintf(out, "%s\n", st.warn.Render("analysis unavailable, used heuristic scoring: "+run.AnalysisError))
	}
}

func init() {
	expandCmd.Flags().String("id", "", "expand this single item regardless of its complexity score")
	expandCmd.Flags().Int("max", 0, "cap the number of items expanded in one run (0 = no cap)")
	rootCmd.AddCommand(expandCmd)
}
