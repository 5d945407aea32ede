package task

import (
	"time"

	"github.com/Interstellar-code/taskmaster/internal/domain"
)

// ComplexityEntry is one item's analysis inside a complexity report.
// Scores here use the rich-analysis 0-10 scale.
type ComplexityEntry struct {
	ItemID              string  `json:"taskId"`
	Title               string  `json:"taskTitle,omitempty"`
	ComplexityScore     float64 `json:"complexityScore"`
	RecommendedSubtasks int     `json:"recommendedSubtasks"`
	Reasoning           string  `json:"reasoning,omitempty"`
	ExpansionPrompt     string  `json:"expansionPrompt,omitempty"`

	// ContentHash fingerprints the item text the analysis was produced
	// from, so consumers can detect stale entries after edits.
	ContentHash string `json:"contentHash,omitempty"`
}

// ComplexityReport is the side artifact produced by a prior analysis pass and
// consumed read-only by the selector and the expansion orchestrator.
type ComplexityReport struct {
	GeneratedAt    time.Time         `json:"generatedAt"`
	ThresholdScore float64           `json:"thresholdScore,omitempty"`
	Entries        []ComplexityEntry `json:"complexityAnalysis"`
}

// Entry returns the analysis for the given item id, or nil if the report has
// none.
func (r *ComplexityReport) Entry(id domain.ItemID) *ComplexityEntry {
	if r == nil {
		return nil
	}
	want := id.String()
	for i := range r.Entries {
		if r.Entries[i].ItemID == want {
			return &r.Entries[i]
		}
	}
	return nil
}

// FreshEntry returns the analysis for the item only when its content
// fingerprint still matches. Entries without a fingerprint are trusted.
func (r *ComplexityReport) FreshEntry(item *WorkItem) *ComplexityEntry {
	entry := r.Entry(item.ID)
	if entry == nil {
		return nil
	}
	if entry.ContentHash != "" && entry.ContentHash != Fingerprint(item) {
		return nil
	}
	return entry
}

// Annotate copies the entry's complexity fields onto the item. This is
// read-only enrichment for presentation; it never influences scoring or
// ordering.
func (e *ComplexityEntry) Annotate(item *WorkItem) {
	item.ComplexityScore = e.ComplexityScore
	item.RecommendedSubtasks = e.RecommendedSubtasks
	item.ComplexityReasoning = e.Reasoning
}
