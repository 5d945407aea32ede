package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ItemID identifies a work item. A top-level task has a scalar numeric id;
// a subtask is addressed by the dotted form "<parent>.<sub>".
// This is a value object: construct through NewTaskID, NewSubtaskID, or
// ParseItemID so invalid ids cannot circulate.
type ItemID struct {
	task int
	sub  int // 0 means top-level
}

// NewTaskID creates a top-level item id.
func NewTaskID(n int) (ItemID, error) {
	if n <= 0 {
		return ItemID{}, fmt.Errorf("task id must be positive, got %d", n)
	}
	return ItemID{task: n}, nil
}

// NewSubtaskID creates a subtask id under the given parent task.
func NewSubtaskID(parent, sub int) (ItemID, error) {
	if parent <= 0 {
		return ItemID{}, fmt.Errorf("parent id must be positive, got %d", parent)
	}
	if sub <= 0 {
		return ItemID{}, fmt.Errorf("subtask id must be positive, got %d", sub)
	}
	return ItemID{task: parent, sub: sub}, nil
}

// ParseItemID parses a scalar ("5") or dotted ("5.1") id string.
func ParseItemID(s string) (ItemID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ItemID{}, fmt.Errorf("item id cannot be empty")
	}

	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return ItemID{}, fmt.Errorf("item id %q is not numeric", s)
		}
		return NewTaskID(n)
	case 2:
		parent, err := strconv.Atoi(parts[0])
		if err != nil {
			return ItemID{}, fmt.Errorf("item id %q has a non-numeric parent part", s)
		}
		sub, err := strconv.Atoi(parts[1])
		if err != nil {
			return ItemID{}, fmt.Errorf("item id %q has a non-numeric subtask part", s)
		}
		return NewSubtaskID(parent, sub)
	default:
		return ItemID{}, fmt.Errorf("item id %q has too many dotted segments", s)
	}
}

// IsZero reports whether the id is the zero value (no id).
func (id ItemID) IsZero() bool {
	return id.task == 0
}

// IsSubtask reports whether the id addresses a subtask.
func (id ItemID) IsSubtask() bool {
	return id.sub != 0
}

// Task returns the top-level task number (the parent number for subtasks).
func (id ItemID) Task() int {
	return id.task
}

// Sub returns the subtask number, or 0 for a top-level id.
func (id ItemID) Sub() int {
	return id.sub
}

// Parent returns the owning top-level id for a subtask. For a top-level id it
// returns the id itself.
func (id ItemID) Parent() ItemID {
	return ItemID{task: id.task}
}

// String returns the canonical wire spelling: "5" or "5.1".
func (id ItemID) String() string {
	if id.sub == 0 {
		return strconv.Itoa(id.task)
	}
	return strconv.Itoa(id.task) + "." + strconv.Itoa(id.sub)
}

// Compare orders ids by task number, then subtask number. Top-level ids sort
// before their own subtasks.
func (id ItemID) Compare(other ItemID) int {
	if id.task != other.task {
		if id.task < other.task {
			return -1
		}
		return 1
	}
	if id.sub != other.sub {
		if id.sub < other.sub {
			return -1
		}
		return 1
	}
	return 0
}

// MarshalJSON preserves the existing wire convention: top-level ids are JSON
// numbers, subtask ids are dotted strings.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.sub == 0 {
		return []byte(strconv.Itoa(id.task)), nil
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts a JSON number or a scalar/dotted string.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		parsed, err := NewTaskID(int(v))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case string:
		parsed, err := ParseItemID(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("item id must be a number or string, got %T", raw)
	}
}
