package expand

import (
	"context"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Analyzer is the rich complexity-analysis side of the external
// decomposition service. Calls may be slow (seconds) and fallible; a failure
// here degrades the run to the heuristic scorer, it never aborts it.
type Analyzer interface {
	Analyze(ctx context.Context, items []task.WorkItem) (*task.ComplexityReport, error)
}

// Decomposer is the per-item decomposition side of the external service.
// The orchestrator guarantees at most one outstanding call at a time.
type Decomposer interface {
	Decompose(ctx context.Context, item *task.WorkItem, directive Directive) ([]task.WorkItem, error)
}

// Directive tells the decomposition service how to split one item: the
// provenance of the decision and the target fan-out.
type Directive struct {
	ItemID         domain.ItemID `json:"itemId"`
	TargetSubtasks int           `json:"targetSubtasks"`

	// Reasoning is the provenance text explaining why the item was
	// selected for expansion.
	Reasoning string `json:"reasoning,omitempty"`

	// Prompt carries a pre-built expansion prompt from a complexity
	// report entry, when the analysis pass produced one.
	Prompt string `json:"prompt,omitempty"`
}
