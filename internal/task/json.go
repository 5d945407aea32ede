package task

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Interstellar-code/taskmaster/internal/domain"
)

// The wire format keeps subtask ids as bare numbers nested under their
// parent, exactly as existing task files store them. Internally every
// subtask carries its fully-qualified dotted id, so marshalling strips the
// parent prefix and unmarshalling restores it.

// MarshalJSON writes the item with its wire-format id: a number for
// top-level items and for nested subtasks (the bare sub number).
func (w WorkItem) MarshalJSON() ([]byte, error) {
	type alias WorkItem
	wire := struct {
		ID json.RawMessage `json:"id"`
		alias
	}{alias: alias(w)}

	// Existing consumers expect an empty array, not null.
	if wire.Dependencies == nil {
		wire.Dependencies = []domain.DepRef{}
	}

	if w.ID.IsSubtask() {
		wire.ID = json.RawMessage(strconv.Itoa(w.ID.Sub()))
	} else {
		idJSON, err := w.ID.MarshalJSON()
		if err != nil {
			return nil, err
		}
		wire.ID = idJSON
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes the item and qualifies the ids of its nested
// subtasks against the item's own id.
func (w *WorkItem) UnmarshalJSON(data []byte) error {
	type alias WorkItem
	wire := struct {
		*alias
	}{alias: (*alias)(w)}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	return w.qualifySubtasks()
}

// qualifySubtasks rewrites bare subtask ids to the dotted form under this
// item's task number. Already-dotted subtask ids must agree with the parent.
func (w *WorkItem) qualifySubtasks() error {
	if w.ID.IsSubtask() && len(w.Subtasks) > 0 {
		return fmt.Errorf("subtask %s cannot have nested subtasks", w.ID)
	}

	for i := range w.Subtasks {
		sub := &w.Subtasks[i]
		switch {
		case sub.ID.IsZero():
			return fmt.Errorf("subtask of %s has no id", w.ID)
		case sub.ID.IsSubtask():
			if sub.ID.Task() != w.ID.Task() {
				return fmt.Errorf("subtask %s is nested under task %s", sub.ID, w.ID)
			}
		default:
			qualified, err := domain.NewSubtaskID(w.ID.Task(), sub.ID.Task())
			if err != nil {
				return fmt.Errorf("subtask of %s: %w", w.ID, err)
			}
			sub.ID = qualified
		}
		if len(sub.Subtasks) > 0 {
			return fmt.Errorf("subtask %s cannot have nested subtasks", sub.ID)
		}
	}
	return nil
}
