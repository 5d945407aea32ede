// Package expand orchestrates automatic decomposition of complex work
// items: analyze the batch, identify items above the complexity threshold,
// and expand them one at a time through the external decomposition service.
// Single-item failures are recorded and skipped, never fatal to the run.
package expand

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Interstellar-code/taskmaster/internal/complexity"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/log"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Options configures one orchestrator run.
type Options struct {
	// AutoExpand is the caller's gate; when false the run reports zero
	// candidates without touching any service.
	AutoExpand bool

	// MaxItems caps how many eligible items are expanded in one run.
	// Zero means no cap.
	MaxItems int
}

// Orchestrator drives the expansion pipeline. One invocation owns all its
// mutable state; nothing is shared until the run report is returned.
type Orchestrator struct {
	analyzer   Analyzer
	decomposer Decomposer
	scorer     *complexity.Scorer
	logger     *log.Logger
}

// New creates an Orchestrator. The analyzer may be nil, in which case every
// run works in heuristic-only mode; the decomposer is required.
func New(analyzer Analyzer, decomposer Decomposer, scorer *complexity.Scorer, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Orchestrator{
		analyzer:   analyzer,
		decomposer: decomposer,
		scorer:     scorer,
		logger:     logger,
	}
}

// Run executes the pipeline over a batch of newly introduced items. The
// report is always returned once the run has started; it is never discarded
// for an error. Cancellation is cooperative: it is honored between phases
// and between items, never mid-item.
func (o *Orchestrator) Run(ctx context.Context, items []task.WorkItem, opts Options) *RunReport {
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Phase:     PhaseAnalyzing,
	}
	logger := o.logger.With("run_id", report.RunID)

	if !opts.AutoExpand {
		logger.Debug("auto-expand disabled, skipping run")
		report.finish()
		return report
	}

	analysis := o.analyze(ctx, items, report, logger)

	if cancelled(ctx, report, logger) {
		report.finish()
		return report
	}

	report.Phase = PhaseIdentifying
	o.identify(items, analysis, opts, report)
	logger.Info("identified expansion candidates",
		"candidates", report.Candidates,
		"analysis_degraded", report.AnalysisError != "")

	if cancelled(ctx, report, logger) {
		report.finish()
		return report
	}

	report.Phase = PhaseExpanding
	o.expandAll(ctx, items, analysis, report, logger)

	report.finish()
	logger.Info("expansion run finished",
		"expanded", report.Expanded,
		"failed", report.Failed,
		"subtasks_created", report.SubtasksCreated)
	return report
}

// analyze runs the rich analysis pass. Failure is downgraded to a warning
// and heuristic mode; an analysis timeout is not retried.
func (o *Orchestrator) analyze(ctx context.Context, items []task.WorkItem, report *RunReport, logger *log.Logger) *task.ComplexityReport {
	if o.analyzer == nil {
		return nil
	}

	analysis, err := o.analyzer.Analyze(ctx, items)
	if err != nil {
		wrapped := errors.NewAnalysisError(err)
		report.AnalysisError = wrapped.Error()
		logger.WithError(wrapped).Warn("analysis failed, continuing with heuristic scorer")
		return nil
	}
	return analysis
}

// identify selects the items eligible for expansion: every item without
// existing children whose assessment crosses the complexity threshold,
// ordered by descending score.
func (o *Orchestrator) identify(items []task.WorkItem, analysis *task.ComplexityReport, opts Options, report *RunReport) {
	for i := range items {
		item := &items[i]
		if item.ID.IsSubtask() || item.HasSubtasks() {
			continue
		}
		assessment := o.scorer.Assess(item, analysis)
		if !assessment.Complex {
			continue
		}
		report.Items = append(report.Items, ItemResult{
			ItemID:         item.ID,
			State:          ItemQueued,
			Method:         assessment.Method,
			Score:          assessment.Score,
			TargetSubtasks: assessment.RecommendedSubtasks,
		})
	}

	sort.Slice(report.Items, func(i, j int) bool {
		if report.Items[i].Score != report.Items[j].Score {
			return report.Items[i].Score > report.Items[j].Score
		}
		return report.Items[i].ItemID.Compare(report.Items[j].ItemID) < 0
	})

	if opts.MaxItems > 0 && len(report.Items) > opts.MaxItems {
		report.Items = report.Items[:opts.MaxItems]
	}
	report.Candidates = len(report.Items)
}

// expandAll processes the queue strictly sequentially: each decomposition
// call may create subtasks that change the eligibility of later items, and
// the external service gives no isolation across concurrent calls.
func (o *Orchestrator) expandAll(ctx context.Context, items []task.WorkItem, analysis *task.ComplexityReport, report *RunReport, logger *log.Logger) {
	index := task.Index(items)

	for i := range report.Items {
		if cancelled(ctx, report, logger) {
			return
		}

		result := &report.Items[i]
		item, ok := index[result.ItemID]
		if !ok {
			result.State = ItemFailed
			result.Error = "item disappeared from the batch"
			continue
		}

		directive := Directive{
			ItemID:         result.ItemID,
			TargetSubtasks: result.TargetSubtasks,
		}
		if entry := analysis.Entry(result.ItemID); entry != nil {
			directive.Reasoning = entry.Reasoning
			directive.Prompt = entry.ExpansionPrompt
		} else {
			directive.Reasoning = o.scorer.Assess(item, nil).Reasoning
		}

		result.State = ItemExpanding
		start := time.Now()
		subtasks, err := o.decomposer.Decompose(ctx, item, directive)
		result.Duration = time.Since(start)

		if err != nil {
			wrapped := errors.NewDecompositionError(result.ItemID.String(), err)
			result.State = ItemFailed
			result.Error = wrapped.Error()
			logger.WithError(wrapped).Warn("item expansion failed, continuing",
				"item", result.ItemID.String())
			continue
		}

		result.State = ItemExpanded
		result.Subtasks = subtasks
		logger.Debug("item expanded",
			"item", result.ItemID.String(),
			"subtasks", len(subtasks),
			"duration", result.Duration)
	}
}

// cancelled checks the cooperative cancellation point between steps.
func cancelled(ctx context.Context, report *RunReport, logger *log.Logger) bool {
	select {
	case <-ctx.Done():
		if !report.Cancelled {
			report.Cancelled = true
			logger.Warn("run cancelled", "phase", string(report.Phase))
		}
		return true
	default:
		return false
	}
}
