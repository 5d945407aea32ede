// Package graph provides the dependency view over a work item collection:
// the completed-id closure that answers every "is X unblocked" query, and
// the validation that keeps dependency references honest. All functions are
// pure over the caller-supplied snapshot.
package graph

import (
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// CompletedSet walks every top-level item and every subtask and collects the
// fully-qualified ids whose status satisfies dependencies (done, its
// completed synonym, or cancelled). This is the single source of truth used
// by the selector, the cascade, and the expansion orchestrator.
func CompletedSet(items []task.WorkItem) map[domain.ItemID]struct{} {
	completed := make(map[domain.ItemID]struct{})
	for i := range items {
		item := &items[i]
		if item.Status.IsComplete() {
			completed[item.ID] = struct{}{}
		}
		for j := range item.Subtasks {
			sub := &item.Subtasks[j]
			if sub.Status.IsComplete() {
				completed[sub.ID] = struct{}{}
			}
		}
	}
	return completed
}

// DependenciesSatisfied reports whether every dependency of the item,
// normalized to its fully-qualified form, is in the completed set.
func DependenciesSatisfied(item *task.WorkItem, completed map[domain.ItemID]struct{}) (bool, error) {
	deps, err := item.NormalizedDependencies()
	if err != nil {
		return false, errors.NewMalformedIDError(item.ID.String(), "", err)
	}
	for _, dep := range deps {
		if _, ok := completed[dep]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Validate checks every dependency reference in the collection: each must
// parse, resolve to an existing item, and a subtask's normalized
// dependencies must stay within the same or a lower-numbered parent scope.
// Malformed or dangling references are loud errors, never silently dropped.
func Validate(items []task.WorkItem) error {
	index := task.Index(items)

	check := func(item *task.WorkItem) error {
		for _, ref := range item.Dependencies {
			dep, err := ref.Normalize(item.ID)
			if err != nil {
				return errors.NewMalformedIDError(item.ID.String(), ref.Raw(), err)
			}
			if _, ok := index[dep]; !ok {
				return errors.NewUnknownDependencyError(item.ID.String(), dep.String())
			}
			if item.ID.IsSubtask() && dep.Task() > item.ID.Task() {
				return errors.New(errors.ErrCodeGraphBadScope,
					"subtask "+item.ID.String()+" cannot depend on higher-numbered scope "+dep.String())
			}
		}
		return nil
	}

	for i := range items {
		item := &items[i]
		if err := check(item); err != nil {
			return err
		}
		for j := range item.Subtasks {
			if err := check(&item.Subtasks[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Unblocked lists the fully-qualified ids of items that are actionable right
// now: status pending or in-progress with every dependency satisfied.
func Unblocked(items []task.WorkItem) ([]domain.ItemID, error) {
	completed := CompletedSet(items)
	var ready []domain.ItemID

	consider := func(item *task.WorkItem) error {
		if !item.Status.IsActionable() {
			return nil
		}
		ok, err := DependenciesSatisfied(item, completed)
		if err != nil {
			return err
		}
		if ok {
			ready = append(ready, item.ID)
		}
		return nil
	}

	for i := range items {
		item := &items[i]
		if err := consider(item); err != nil {
			return nil, err
		}
		for j := range item.Subtasks {
			if err := consider(&item.Subtasks[j]); err != nil {
				return nil, err
			}
		}
	}
	return ready, nil
}
