// Package store is the persistence boundary of the engine. The engine
// itself is stateless over caller-supplied snapshots; this package defines
// the collaborator contract it loads them from and writes results back to,
// plus a JSON file reference implementation.
package store

import (
	"context"

	"github.com/Interstellar-code/taskmaster/internal/cascade"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// Store supplies work item and requirement snapshots and accepts the
// engine's write-backs. No particular storage technology is assumed.
type Store interface {
	LoadWorkItems(ctx context.Context) ([]task.WorkItem, error)
	LoadRequirements(ctx context.Context) ([]task.Requirement, error)

	// ApplyStatusChange sets one item's status.
	ApplyStatusChange(ctx context.Context, id domain.ItemID, status domain.Status) error

	// ApplyNewSubtasks attaches freshly decomposed subtasks to their
	// parent item.
	ApplyNewSubtasks(ctx context.Context, parent domain.ItemID, subtasks []task.WorkItem) error

	// ApplyRequirementChanges persists cascade-derived requirement
	// status transitions.
	ApplyRequirementChanges(ctx context.Context, changes []cascade.Change) error
}
