package domain

import "fmt"

// Priority represents a work item priority level.
// This is a value object that enforces valid priority values.
type Priority string

// Valid priority levels
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NewPriority creates a new Priority value object with validation.
func NewPriority(value string) (Priority, error) {
	p := Priority(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks if the priority is valid.
func (p Priority) Validate() error {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	default:
		return fmt.Errorf("invalid priority %q: must be high, medium, or low", string(p))
	}
}

// Weight returns the numeric weight used in selection ordering.
// Unknown or empty priorities weigh the same as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// IsHigherThan checks if this priority outranks another.
func (p Priority) IsHigherThan(other Priority) bool {
	return p.Weight() > other.Weight()
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}
