package complexity

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewScorer() error = %v", err)
	}
	return s
}

func testItem(t *testing.T, id, title string) *task.WorkItem {
	t.Helper()
	parsed, err := domain.ParseItemID(id)
	if err != nil {
		t.Fatalf("ParseItemID(%q) error = %v", id, err)
	}
	return &task.WorkItem{ID: parsed, Title: title, Status: domain.StatusPending}
}

func TestScoreComplexItem(t *testing.T) {
	s := newTestScorer(t)
	item := testItem(t, "1",
		"Implement distributed caching architecture with authentication and multiple integration points")

	result := s.Score(item)

	if result.Score < 60 {
		t.Errorf("Score = %d, want >= 60 for a dense architecture item", result.Score)
	}
	if !result.Complex {
		t.Error("item should be classified complex at the default threshold")
	}

	var keywordReason, scopeReason bool
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "keyword") {
			keywordReason = true
		}
		if strings.Contains(reason, "connective") {
			scopeReason = true
		}
	}
	if !keywordReason {
		t.Errorf("Reasons = %v, want a keyword-based entry", result.Reasons)
	}
	if !scopeReason {
		t.Errorf("Reasons = %v, want a scope-based entry", result.Reasons)
	}
}

func TestScoreSimpleItem(t *testing.T) {
	s := newTestScorer(t)
	item := testItem(t, "2", "Fix typo in README")

	result := s.Score(item)

	if result.Complex {
		t.Errorf("Score = %d, a two-word fix should not be complex", result.Score)
	}
	if result.RecommendedSubtasks != 3 {
		t.Errorf("RecommendedSubtasks = %d, want the floor value 3", result.RecommendedSubtasks)
	}
}

func TestScoreDeterminism(t *testing.T) {
	s := newTestScorer(t)
	item := testItem(t, "3", "Build streaming pipeline with encryption and database replication")

	first := s.Score(item)
	second := s.Score(item)

	if first.Score != second.Score || !reflect.DeepEqual(first.Breakdown, second.Breakdown) {
		t.Errorf("Score not deterministic: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Reasons, second.Reasons) {
		t.Errorf("Reasons not deterministic: %v vs %v", first.Reasons, second.Reasons)
	}
}

func TestScoreStructuredDetails(t *testing.T) {
	s := newTestScorer(t)
	item := testItem(t, "4", "Migrate the authentication service")
	item.Details = `Steps to cover.
- extract the session store
- add the migration shims
1. cut over reads
2. cut over writes`

	result := s.Score(item)

	if result.Breakdown.Structure < 60 {
		t.Errorf("Structure = %d, want a high structure score for bullets and numbered steps",
			result.Breakdown.Structure)
	}

	var bulletReason, numberedReason bool
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "bullet") {
			bulletReason = true
		}
		if strings.Contains(reason, "numbered") {
			numberedReason = true
		}
	}
	if !bulletReason || !numberedReason {
		t.Errorf("Reasons = %v, want bullet and numbered entries", result.Reasons)
	}
}

func TestRecommendedSubtasks(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{95, 6},
		{90, 6},
		{85, 5},
		{80, 5},
		{75, 4},
		{70, 4},
		{69, 3},
		{10, 3},
	}

	for _, tt := range tests {
		if got := RecommendedSubtasks(tt.score); got != tt.want {
			t.Errorf("RecommendedSubtasks(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestScoreBreakdownWeighting(t *testing.T) {
	s := newTestScorer(t)
	item := testItem(t, "5", "Update docs")

	result := s.Score(item)

	cfg := DefaultConfig()
	weighted := result.Breakdown.Length*cfg.Weights.Length +
		result.Breakdown.Keywords*cfg.Weights.Keywords +
		result.Breakdown.Structure*cfg.Weights.Structure +
		result.Breakdown.Technical*cfg.Weights.Technical +
		result.Breakdown.Scope*cfg.Weights.Scope

	want := (weighted + 50) / 100 // round to nearest
	if result.Score != want {
		t.Errorf("Score = %d, want weighted sum %d", result.Score, want)
	}
}
