package domain

import "fmt"

// Status represents the lifecycle state of a work item.
// The string spellings are part of the wire contract and must not change.
type Status string

// Valid work item statuses
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
	StatusReview     Status = "review"
	StatusBlocked    Status = "blocked"
	StatusDeferred   Status = "deferred"
	StatusCancelled  Status = "cancelled"

	// StatusCompleted is an accepted synonym for done kept for
	// compatibility with older task files.
	StatusCompleted Status = "completed"
)

// NewStatus creates a Status value object with validation.
func NewStatus(value string) (Status, error) {
	s := Status(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the status is a known value.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusReview,
		StatusBlocked, StatusDeferred, StatusCancelled, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("invalid status %q", string(s))
	}
}

// IsComplete reports whether the status satisfies dependencies: done (or its
// completed synonym) and cancelled items no longer block anything.
func (s Status) IsComplete() bool {
	switch s {
	case StatusDone, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsDone reports whether the item finished successfully. Unlike IsComplete
// this excludes cancelled, so requirement progress counts only real work.
func (s Status) IsDone() bool {
	return s == StatusDone || s == StatusCompleted
}

// IsActionable reports whether the item can be picked up by the selector.
func (s Status) IsActionable() bool {
	return s == StatusPending || s == StatusInProgress
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// RequirementStatus represents the lifecycle state of a requirement document.
type RequirementStatus string

// Valid requirement document statuses
const (
	RequirementPending    RequirementStatus = "pending"
	RequirementInProgress RequirementStatus = "in-progress"
	RequirementDone       RequirementStatus = "done"
	RequirementArchived   RequirementStatus = "archived"
)

// NewRequirementStatus creates a RequirementStatus value object with validation.
func NewRequirementStatus(value string) (RequirementStatus, error) {
	s := RequirementStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the requirement status is a known value.
func (s RequirementStatus) Validate() error {
	switch s {
	case RequirementPending, RequirementInProgress, RequirementDone, RequirementArchived:
		return nil
	default:
		return fmt.Errorf("invalid requirement status %q", string(s))
	}
}

// String returns the string representation.
func (s RequirementStatus) String() string {
	return string(s)
}
