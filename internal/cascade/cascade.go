// Package cascade derives requirement-document status from the aggregate
// state of the work items that trace to it. Derivation is a pure
// recomputation over the full item set, never an incremental delta, so
// repeated or out-of-order invocations converge on the same answer.
package cascade

import (
	"sort"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Change records one derived requirement-status transition.
type Change struct {
	RequirementID  string                   `json:"requirementId"`
	PreviousStatus domain.RequirementStatus `json:"previousStatus"`
	NewStatus      domain.RequirementStatus `json:"newStatus"`
}

// cascadeTriggers is the allow-list of item statuses that can move a
// requirement document. Anything else is a deliberate no-op: callers invoke
// the cascade unconditionally on every status change and let this filter.
var cascadeTriggers = map[domain.Status]bool{
	domain.StatusInProgress: true,
	domain.StatusDone:       true,
	domain.StatusPending:    true,
}

// Cascade recomputes the status of every requirement touched by the changed
// items and returns a change record per requirement whose derived status
// differs from its stored one. Manually archived requirements are sticky and
// never overridden. Items without a requirement source, unknown requirement
// ids, and statuses outside the allow-list produce no changes and no errors.
func Cascade(changedIDs []domain.ItemID, newStatus domain.Status, items []task.WorkItem, reqs []task.Requirement) []Change {
	if !cascadeTriggers[newStatus] {
		return nil
	}

	index := task.Index(items)
	byID := make(map[string]*task.Requirement, len(reqs))
	for i := range reqs {
		byID[reqs[i].ID] = &reqs[i]
	}

	affected := make(map[string]bool)
	for _, id := range changedIDs {
		item, ok := index[id]
		if !ok {
			continue
		}
		// Subtask changes roll up through their owning top-level item.
		if item.ID.IsSubtask() {
			parent, ok := index[item.ID.Parent()]
			if !ok {
				continue
			}
			item = parent
		}
		if item.RequirementSource == nil || item.RequirementSource.RequirementID == "" {
			continue
		}
		affected[item.RequirementSource.RequirementID] = true
	}

	if len(affected) == 0 {
		return nil
	}

	groups := task.ByRequirement(items)

	var changes []Change
	for reqID := range affected {
		req, ok := byID[reqID]
		if !ok {
			continue
		}
		if req.Status == domain.RequirementArchived {
			// Archival is sticky; not an error condition.
			continue
		}

		derived := Derive(groups[reqID])
		if derived == req.Status {
			continue
		}
		changes = append(changes, Change{
			RequirementID:  reqID,
			PreviousStatus: req.Status,
			NewStatus:      derived,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].RequirementID < changes[j].RequirementID
	})
	return changes
}

// Derive computes a requirement's aggregate status purely from the current
// statuses of its linked items: done when every item is done, pending when
// none has been started, in-progress otherwise.
func Derive(items []*task.WorkItem) domain.RequirementStatus {
	if len(items) == 0 {
		return domain.RequirementPending
	}

	done := 0
	started := 0
	for _, item := range items {
		switch {
		case item.Status.IsDone():
			done++
			started++
		case item.Status != domain.StatusPending:
			started++
		}
	}

	switch {
	case done == len(items):
		return domain.RequirementDone
	case started == 0:
		return domain.RequirementPending
	default:
		return domain.RequirementInProgress
	}
}

// Counts derives the aggregate task counts for a requirement from its
// linked items. Counts are presentation data, never stored authoritatively.
func Counts(items []*task.WorkItem) task.TaskCounts {
	counts := task.TaskCounts{Total: len(items)}
	for _, item := range items {
		switch {
		case item.Status.IsDone():
			counts.Done++
		case item.Status == domain.StatusInProgress:
			counts.InProgress++
		case item.Status == domain.StatusPending:
			counts.Pending++
		}
	}
	return counts
}
