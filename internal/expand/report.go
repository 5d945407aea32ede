package expand

import (
	"time"

	"github.com/Interstellar-code/taskmaster/internal/complexity"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Phase is the orchestrator's run state.
type Phase string

// Run phases, in order.
const (
	PhaseAnalyzing   Phase = "analyzing"
	PhaseIdentifying Phase = "identifying"
	PhaseExpanding   Phase = "expanding"
	PhaseDone        Phase = "done"
)

// ItemState is the per-item sub-state within a run.
type ItemState string

// Per-item states.
const (
	ItemQueued    ItemState = "queued"
	ItemExpanding ItemState = "expanding"
	ItemExpanded  ItemState = "expanded"
	ItemFailed    ItemState = "failed"
)

// ItemResult records one candidate item's outcome.
type ItemResult struct {
	ItemID         domain.ItemID     `json:"itemId"`
	State          ItemState         `json:"state"`
	Method         complexity.Method `json:"method"`
	Score          float64           `json:"score"`
	TargetSubtasks int               `json:"targetSubtasks"`
	Duration       time.Duration     `json:"duration"`
	Error          string            `json:"error,omitempty"`

	// Subtasks holds the newly created children on success. The
	// orchestrator never writes them back itself; persistence is the
	// caller's decision.
	Subtasks []task.WorkItem `json:"subtasks,omitempty"`
}

// RunReport is the single surface for a run's outcome, including partial
// failure. Once a run has started the report is always returned, never
// replaced by an error, so the caller can decide what to retry.
type RunReport struct {
	RunID      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Phase      Phase     `json:"phase"`

	Candidates      int `json:"candidates"`
	Expanded        int `json:"expanded"`
	Failed          int `json:"failed"`
	SubtasksCreated int `json:"subtasksCreated"`

	// AverageLatency is the mean duration of attempted decomposition
	// calls.
	AverageLatency time.Duration `json:"averageLatency"`

	// Method breakdown: how many candidates were judged by rich analysis
	// versus the fallback heuristic.
	AnalyzedItems  int `json:"analyzedItems"`
	HeuristicItems int `json:"heuristicItems"`

	// AnalysisError records why the run degraded to heuristic-only mode,
	// if it did.
	AnalysisError string `json:"analysisError,omitempty"`

	// Cancelled is set when the run stopped early at a cooperative
	// cancellation point; unprocessed items stay queued.
	Cancelled bool `json:"cancelled,omitempty"`

	Items []ItemResult `json:"items"`
}

// finish seals the report: computes the latency average and the totals.
func (r *RunReport) finish() {
	r.Phase = PhaseDone
	r.FinishedAt = time.Now()

	var attempted int
	var total time.Duration
	for i := range r.Items {
		item := &r.Items[i]
		switch item.State {
		case ItemExpanded:
			r.Expanded++
			r.SubtasksCreated += len(item.Subtasks)
		case ItemFailed:
			r.Failed++
		}
		if item.State == ItemExpanded || item.State == ItemFailed {
			attempted++
			total += item.Duration
		}
		switch item.Method {
		case complexity.MethodAnalysis:
			r.AnalyzedItems++
		case complexity.MethodHeuristic:
			r.HeuristicItems++
		}
	}
	if attempted > 0 {
		r.AverageLatency = total / time.Duration(attempted)
	}
}
