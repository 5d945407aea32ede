package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/complexity"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/log"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the backlog for complexity and write a report",
	Long: `Score every top-level item with the heuristic complexity scorer and
write the results as a complexity report.

The report is the input for 'taskmaster expand' and enriches 'next' and
'list' output. Each entry carries a content fingerprint so edits to an item
invalidate its stale analysis. Use --config to override the scoring
vocabulary with a YAML file.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := complexity.DefaultConfig()
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		var err error
		cfg, err = complexity.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	scorer, err := complexity.NewScorer(cfg)
	if err != nil {
		return err
	}

	s := newStore(cmd)
	items, err := s.LoadWorkItems(cmd.Context())
	if err != nil {
		return err
	}

	report := &task.ComplexityReport{
		GeneratedAt:    time.Now().UTC(),
		ThresholdScore: cfg.ReportThreshold,
	}

	st := newStyles(cmd)
	out := cmd.OutOrStdout()
	complexCount := 0

	for i := range items {
		item := &items[i]
		result := scorer.Score(item)

		report.Entries = append(report.Entries, task.ComplexityEntry{
			ItemID:              item.ID.String(),
			Title:               item.Title,
			ComplexityScore:     float64(result.Score) / 10,
			RecommendedSubtasks: result.RecommendedSubtasks,
			Reasoning:           strings.Join(result.Reasons, "; "),
			ContentHash:         task.Fingerprint(item),
		})

		marker := st.label.Render("  simple")
		if result.Complex {
			marker = st.warn.Render(" complex")
			complexCount++
		}
		fmt.Fprintf(out, "%s %s %3d/100  %s\n",
			st.header.Render(fmt.Sprintf("%-6s", item.ID)), marker, result.Score, item.Title)
	}

	outputPath, _ := cmd.Flags().GetString("report")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create report directory", err)
	}
	if err := task.SaveReport(report, outputPath); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "save complexity report", err)
	}

	log.DefaultLogger().Info("complexity report written",
		"path", outputPath,
		"items", len(report.Entries),
		"complex", complexCount)

	fmt.Fprintf(out, "\n%s %d of %d items scored complex. Report written to %s\n",
		st.ok.Render("Done."), complexCount, len(report.Entries), outputPath)
	return nil
}

func init() {
	analyzeCmd.Flags().String("config", "", "YAML file overriding the scoring vocabulary")
	rootCmd.AddCommand(analyzeCmd)
}
