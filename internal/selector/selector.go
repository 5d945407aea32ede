// Package selector picks the single best next work item from a snapshot of
// the task collection. Subtasks of in-progress parents always win over
// top-level work; among top-level candidates, finishing a nearly-complete
// requirement document beats starting a new one.
package selector

import (
	"math"
	"sort"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/graph"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Next returns the best next actionable item, or nil when nothing is
// eligible. If a complexity report is supplied, the returned item is
// annotated with its complexity fields; the annotation never affects
// ordering. Called twice on an unchanged snapshot it returns the same item.
func Next(items []task.WorkItem, report *task.ComplexityReport) (*task.WorkItem, error) {
	completed := graph.CompletedSet(items)

	picked, err := nextSubtask(items, completed)
	if err != nil {
		return nil, err
	}
	if picked == nil {
		picked, err = nextTopLevel(items, completed)
		if err != nil {
			return nil, err
		}
	}
	if picked == nil {
		return nil, nil
	}

	if entry := report.Entry(picked.ID); entry != nil {
		entry.Annotate(picked)
	}
	return picked, nil
}

// subtaskCandidate pairs an eligible subtask with its parent, which supplies
// the priority when the subtask has none of its own.
type subtaskCandidate struct {
	sub    *task.WorkItem
	parent *task.WorkItem
}

func (c subtaskCandidate) priorityWeight() int {
	if c.sub.Priority != "" {
		return c.sub.Priority.Weight()
	}
	return c.parent.Priority.Weight()
}

// nextSubtask is the preference phase: collect every actionable subtask of
// an in-progress parent whose dependencies are all satisfied. Any candidate
// here short-circuits the top-level phase entirely.
func nextSubtask(items []task.WorkItem, completed map[domain.ItemID]struct{}) (*task.WorkItem, error) {
	var candidates []subtaskCandidate

	for i := range items {
		parent := &items[i]
		if parent.Status != domain.StatusInProgress {
			continue
		}
		for j := range parent.Subtasks {
			sub := &parent.Subtasks[j]
			if !sub.Status.IsActionable() {
				continue
			}
			ok, err := graph.DependenciesSatisfied(sub, completed)
			if err != nil {
				return nil, err
			}
			if ok {
				candidates = append(candidates, subtaskCandidate{sub: sub, parent: parent})
			}
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if wa, wb := a.priorityWeight(), b.priorityWeight(); wa != wb {
			return wa > wb
		}
		if da, db := len(a.sub.Dependencies), len(b.sub.Dependencies); da != db {
			return da < db
		}
		if pa, pb := a.sub.ID.Task(), b.sub.ID.Task(); pa != pb {
			return pa < pb
		}
		return a.sub.ID.Sub() < b.sub.ID.Sub()
	})

	return candidates[0].sub, nil
}

type topLevelCandidate struct {
	item        *task.WorkItem
	reqPriority int
}

// nextTopLevel is the fallback phase over actionable top-level items with
// satisfied dependencies, ordered by requirement-completion priority, then
// priority weight, then fewest dependencies, then numeric id.
func nextTopLevel(items []task.WorkItem, completed map[domain.ItemID]struct{}) (*task.WorkItem, error) {
	groups := task.ByRequirement(items)

	var candidates []topLevelCandidate
	for i := range items {
		item := &items[i]
		if !item.Status.IsActionable() {
			continue
		}
		ok, err := graph.DependenciesSatisfied(item, completed)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		candidates = append(candidates, topLevelCandidate{
			item:        item,
			reqPriority: requirementPriority(item, groups),
		})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.reqPriority != b.reqPriority {
			return a.reqPriority > b.reqPriority
		}
		if wa, wb := a.item.Priority.Weight(), b.item.Priority.Weight(); wa != wb {
			return wa > wb
		}
		if da, db := len(a.item.Dependencies), len(b.item.Dependencies); da != db {
			return da < db
		}
		return a.item.ID.Task() < b.item.ID.Task()
	})

	return candidates[0].item, nil
}

// requirementPriority scores how urgently the item's requirement document
// wants finishing. The constants are a preserved product policy: they reward
// closing out nearly-complete requirements over opening new ones.
func requirementPriority(item *task.WorkItem, groups map[string][]*task.WorkItem) int {
	if item.RequirementSource == nil || item.RequirementSource.RequirementID == "" {
		return 0
	}
	siblings := groups[item.RequirementSource.RequirementID]
	if len(siblings) == 0 {
		return 0
	}

	done := 0
	for _, sibling := range siblings {
		if sibling.Status.IsDone() {
			done++
		}
	}
	fraction := float64(done) / float64(len(siblings))
	score := int(math.Floor(fraction * 100))

	if fraction >= 0.8 {
		score += 50
	}
	if remaining := len(siblings) - done; remaining <= 3 {
		score += 25
	}

	first := true
	earlierComplete := true
	for _, sibling := range siblings {
		if sibling.ID.Compare(item.ID) < 0 {
			first = false
			if !sibling.Status.IsDone() {
				earlierComplete = false
			}
		}
	}
	if first {
		score += 5
	} else if earlierComplete {
		score += 10
	}

	return score
}
