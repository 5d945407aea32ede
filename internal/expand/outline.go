package expand

import (
	"context"
	"fmt"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// OutlineDecomposer is a deterministic offline decomposer. It scaffolds the
// target number of pending subtasks under the parent so a run can proceed
// without an external decomposition service; the generated titles are
// placeholders meant to be refined by hand.
type OutlineDecomposer struct{}

// NewOutlineDecomposer creates the offline scaffold decomposer.
func NewOutlineDecomposer() *OutlineDecomposer {
	return &OutlineDecomposer{}
}

// Decompose produces directive.TargetSubtasks sequential subtasks, each
// depending on its predecessor.
func (d *OutlineDecomposer) Decompose(_ context.Context, item *task.WorkItem, directive Directive) ([]task.WorkItem, error) {
	n := directive.TargetSubtasks
	if n < 1 {
		n = 1
	}

	subtasks := make([]task.WorkItem, 0, n)
	for i := 1; i <= n; i++ {
		id, err := domain.NewSubtaskID(item.ID.Task(), i)
		if err != nil {
			return nil, err
		}
		sub := task.WorkItem{
			ID:          id,
			Title:       fmt.Sprintf("%s (part %d of %d)", item.Title, i, n),
			Description: directive.Reasoning,
			Status:      domain.StatusPending,
		}
		if i > 1 {
			sub.Dependencies = []domain.DepRef{domain.NewBareDepRef(i - 1)}
		}
		subtasks = append(subtasks, sub)
	}
	return subtasks, nil
}
