package task

import (
	"fmt"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
)

// Validate checks the structural invariants of a task collection: every item
// carries a valid id, status, and priority, and no fully-qualified id appears
// twice. Dependency resolution is the graph package's concern.
func Validate(items []WorkItem) error {
	seen := make(map[domain.ItemID]bool)

	var check func(item *WorkItem) error
	check = func(item *WorkItem) error {
		if item.ID.IsZero() {
			return errors.New(errors.ErrCodeTaskInvalid, "work item has no id")
		}
		if seen[item.ID] {
			return errors.New(errors.ErrCodeTaskDuplicateID,
				fmt.Sprintf("duplicate item id %s", item.ID))
		}
		seen[item.ID] = true

		if item.Status != "" {
			if err := item.Status.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeTaskBadStatus,
					fmt.Sprintf("item %s", item.ID), err)
			}
		}
		if item.Priority != "" {
			if err := item.Priority.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeTaskInvalid,
					fmt.Sprintf("item %s", item.ID), err)
			}
		}

		for i := range item.Subtasks {
			if err := check(&item.Subtasks[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range items {
		if items[i].ID.IsSubtask() {
			return errors.New(errors.ErrCodeTaskInvalid,
				fmt.Sprintf("subtask %s cannot appear at the top level", items[i].ID))
		}
		if err := check(&items[i]); err != nil {
			return err
		}
	}
	return nil
}
