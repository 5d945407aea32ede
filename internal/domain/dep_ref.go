package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DepRef is a dependency reference exactly as written in a task file. Inside
// a subtask a bare number refers to a sibling subtask of the same parent and
// must be normalized to the dotted form before any completeness check; a
// string may carry either a scalar top-level id or an already-qualified
// dotted id.
type DepRef struct {
	raw    string
	isBare bool // bare JSON number, sibling-relative inside a subtask
}

// NewDepRef creates a qualified (non-bare) dependency reference.
func NewDepRef(id ItemID) DepRef {
	return DepRef{raw: id.String()}
}

// NewBareDepRef creates a sibling-relative bare reference.
func NewBareDepRef(sub int) DepRef {
	return DepRef{raw: strconv.Itoa(sub), isBare: true}
}

// Raw returns the reference as written.
func (d DepRef) Raw() string {
	return d.raw
}

// Normalize resolves the reference to a fully-qualified ItemID.
// owner is the id of the item that declares the dependency: bare numeric
// references inside a subtask resolve to siblings under the same parent.
func (d DepRef) Normalize(owner ItemID) (ItemID, error) {
	if d.raw == "" {
		return ItemID{}, fmt.Errorf("empty dependency reference")
	}

	if d.isBare && owner.IsSubtask() {
		sub, err := strconv.Atoi(d.raw)
		if err != nil {
			return ItemID{}, fmt.Errorf("bare dependency %q is not numeric", d.raw)
		}
		return NewSubtaskID(owner.Task(), sub)
	}

	id, err := ParseItemID(d.raw)
	if err != nil {
		return ItemID{}, fmt.Errorf("dependency of %s: %w", owner, err)
	}
	return id, nil
}

// MarshalJSON writes bare references back as numbers and qualified ones in
// their original scalar-or-dotted spelling.
func (d DepRef) MarshalJSON() ([]byte, error) {
	if d.isBare {
		return []byte(d.raw), nil
	}
	id, err := ParseItemID(d.raw)
	if err != nil {
		return nil, err
	}
	return id.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number (bare, sibling-relative in subtask
// context) or a string.
func (d *DepRef) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		d.raw = strconv.Itoa(int(v))
		d.isBare = true
		return nil
	case string:
		if _, err := ParseItemID(v); err != nil {
			return err
		}
		d.raw = v
		d.isBare = false
		return nil
	default:
		return fmt.Errorf("dependency must be a number or string, got %T", raw)
	}
}
