package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/log"
	"github.com/Interstellar-code/taskmaster/internal/store"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

var rootCmd = &cobra.Command{
	Use:   "taskmaster",
	Short: "Task scheduling and dependency resolution engine",
	Long: `taskmaster manages a dependency-aware backlog of tasks and subtasks.
It scores items for structural complexity, decomposes the complex ones into
subtasks, picks the next actionable item by priority and dependency order,
and cascades task status changes up to their requirement documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")

		cfg := log.DefaultConfig()
		cfg.Level = log.ParseLevel(level)
		cfg.Format = log.ParseFormat(format)
		log.SetDefaultLogger(log.New(cfg))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context so in-flight
// runs can observe cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("file", ".taskmaster/tasks/tasks.json", "path to the tasks file")
	rootCmd.PersistentFlags().String("requirements", ".taskmaster/requirements.json", "path to the requirements file")
	rootCmd.PersistentFlags().String("report", ".taskmaster/reports/task-complexity-report.json", "path to the complexity report")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// newStore builds the file store from the persistent path flags.
func newStore(cmd *cobra.Command) *store.FileStore {
	tasksPath, _ := cmd.Flags().GetString("file")
	reqsPath, _ := cmd.Flags().GetString("requirements")
	return store.NewFileStore(tasksPath, reqsPath)
}

// loadReportIfAny loads the complexity report when one exists. A missing
// report is not an error; callers degrade to heuristic scoring.
func loadReportIfAny(cmd *cobra.Command) *task.ComplexityReport {
	path, _ := cmd.Flags().GetString("report")
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	report, err := task.LoadReport(path)
	if err != nil {
		log.DefaultLogger().WithError(err).Warn("ignoring unreadable complexity report", "path", path)
		return nil
	}
	return report
}
