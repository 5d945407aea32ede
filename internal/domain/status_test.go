package domain

import "testing"

func TestStatusIsComplete(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusDone, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusReview, false},
		{StatusBlocked, false},
		{StatusDeferred, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsComplete(); got != tt.want {
			t.Errorf("Status(%q).IsComplete() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusIsDone(t *testing.T) {
	if !StatusDone.IsDone() || !StatusCompleted.IsDone() {
		t.Error("done and completed should both count as done")
	}
	if StatusCancelled.IsDone() {
		t.Error("cancelled satisfies dependencies but is not done work")
	}
}

func TestStatusIsActionable(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusDone, false},
		{StatusBlocked, false},
		{StatusDeferred, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsActionable(); got != tt.want {
			t.Errorf("Status(%q).IsActionable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestNewStatus(t *testing.T) {
	if _, err := NewStatus("in-progress"); err != nil {
		t.Errorf("NewStatus(in-progress) error = %v", err)
	}
	if _, err := NewStatus("doing"); err == nil {
		t.Error("NewStatus(doing) expected error")
	}
}

func TestNewRequirementStatus(t *testing.T) {
	for _, valid := range []string{"pending", "in-progress", "done", "archived"} {
		if _, err := NewRequirementStatus(valid); err != nil {
			t.Errorf("NewRequirementStatus(%q) error = %v", valid, err)
		}
	}
	if _, err := NewRequirementStatus("closed"); err == nil {
		t.Error("NewRequirementStatus(closed) expected error")
	}
}

func TestPriorityWeight(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority(""), 2},
		{Priority("urgent"), 2},
	}

	for _, tt := range tests {
		if got := tt.priority.Weight(); got != tt.want {
			t.Errorf("Priority(%q).Weight() = %d, want %d", tt.priority, got, tt.want)
		}
	}
}
