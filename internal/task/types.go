package task

import (
	"github.com/Interstellar-code/taskmaster/internal/domain"
)

// WorkItem represents a task or subtask, the atomic unit of schedulable work.
// Field names are part of the wire contract shared with existing consumers.
type WorkItem struct {
	ID           domain.ItemID   `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Details      string          `json:"details,omitempty"`
	Status       domain.Status   `json:"status"`
	Priority     domain.Priority `json:"priority,omitempty"`
	Dependencies []domain.DepRef `json:"dependencies"`
	Subtasks     []WorkItem      `json:"subtasks,omitempty"`

	// RequirementSource is a read-only association to the requirement
	// document this item was generated from. The engine never creates or
	// deletes requirement documents through it.
	RequirementSource *RequirementRef `json:"requirementSource,omitempty"`

	// Complexity fields are attached lazily from a complexity report and
	// are never persisted as primary fields.
	ComplexityScore     float64 `json:"-"`
	RecommendedSubtasks int     `json:"-"`
	ComplexityReasoning string  `json:"-"`
}

// HasSubtasks reports whether the item has already been decomposed.
func (w *WorkItem) HasSubtasks() bool {
	return len(w.Subtasks) > 0
}

// Text returns the concatenated free text used by the complexity scorer.
func (w *WorkItem) Text() string {
	return w.Title + " " + w.Description + " " + w.Details
}

// NormalizedDependencies resolves every dependency reference of the item to
// its fully-qualified id. Bare numeric references inside a subtask resolve to
// siblings of the same parent.
func (w *WorkItem) NormalizedDependencies() ([]domain.ItemID, error) {
	if len(w.Dependencies) == 0 {
		return nil, nil
	}
	ids := make([]domain.ItemID, 0, len(w.Dependencies))
	for _, ref := range w.Dependencies {
		id, err := ref.Normalize(w.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RequirementRef is the back-reference from a work item to the requirement
// document it traces to.
type RequirementRef struct {
	RequirementID string `json:"requirementId"`
	FilePath      string `json:"filePath,omitempty"`
}

// Requirement represents a requirement document (PRD) that owns work items
// by back-reference.
type Requirement struct {
	ID       string                   `json:"id"`
	Title    string                   `json:"title,omitempty"`
	Status   domain.RequirementStatus `json:"status"`
	FilePath string                   `json:"filePath,omitempty"`

	// TaskCounts is derived from the linked work items, never stored
	// authoritatively.
	TaskCounts TaskCounts `json:"taskCounts,omitempty"`
}

// TaskCounts aggregates the lifecycle states of a requirement's work items.
type TaskCounts struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
}

// Index builds a lookup of every top-level item and every subtask by
// fully-qualified id. The returned pointers alias the input slice and stay
// valid only while it is not mutated.
func Index(items []WorkItem) map[domain.ItemID]*WorkItem {
	index := make(map[domain.ItemID]*WorkItem, len(items))
	for i := range items {
		item := &items[i]
		index[item.ID] = item
		for j := range item.Subtasks {
			sub := &item.Subtasks[j]
			index[sub.ID] = sub
		}
	}
	return index
}

// ByRequirement groups fully-qualified top-level items by the requirement
// document they trace to. Items without a requirement source are omitted.
func ByRequirement(items []WorkItem) map[string][]*WorkItem {
	groups := make(map[string][]*WorkItem)
	for i := range items {
		item := &items[i]
		if item.RequirementSource == nil || item.RequirementSource.RequirementID == "" {
			continue
		}
		reqID := item.RequirementSource.RequirementID
		groups[reqID] = append(groups[reqID], item)
	}
	return groups
}
