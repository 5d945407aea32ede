package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interstellar-code/taskmaster/internal/cascade"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

const sampleTasks = `{
  "tasks": [
    {
      "id": 1,
      "title": "Set up database schema",
      "status": "done",
      "priority": "high",
      "dependencies": []
    },
    {
      "id": 2,
      "title": "Build API layer",
      "status": "pending",
      "priority": "medium",
      "dependencies": [1],
      "requirementSource": {"requirementId": "req-001"}
    }
  ]
}`

const sampleRequirements = `{
  "requirements": [
    {"id": "req-001", "title": "Core platform", "status": "pending"}
  ]
}`

func mustTaskID(t *testing.T, n int) domain.ItemID {
	t.Helper()
	id, err := domain.NewTaskID(n)
	require.NoError(t, err)
	return id
}

func mustSubtaskID(t *testing.T, parent, sub int) domain.ItemID {
	t.Helper()
	id, err := domain.NewSubtaskID(parent, sub)
	require.NoError(t, err)
	return id
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileStoreLoadWorkItems(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")

	items, err := s.LoadWorkItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, mustTaskID(t, 1), items[0].ID)
	assert.Equal(t, domain.StatusDone, items[0].Status)
	assert.Equal(t, "req-001", items[1].RequirementSource.RequirementID)
}

func TestFileStoreLoadWorkItemsMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), "")

	_, err := s.LoadWorkItems(context.Background())
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeFileNotFound, engineErr.Code)
}

func TestFileStoreLoadWorkItemsRejectsUnknownDependency(t *testing.T) {
	path := writeTemp(t, "tasks.json", `{
  "tasks": [
    {"id": 1, "title": "Orphan", "status": "pending", "dependencies": [99]}
  ]
}`)
	s := NewFileStore(path, "")

	_, err := s.LoadWorkItems(context.Background())
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeGraphUnknownDependency, engineErr.Code)
}

func TestFileStoreLoadRequirements(t *testing.T) {
	path := writeTemp(t, "requirements.json", sampleRequirements)
	s := NewFileStore("", path)

	reqs, err := s.LoadRequirements(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "req-001", reqs[0].ID)
	assert.Equal(t, domain.RequirementPending, reqs[0].Status)
}

func TestFileStoreLoadRequirementsOptional(t *testing.T) {
	// Unconfigured path.
	s := NewFileStore("", "")
	reqs, err := s.LoadRequirements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reqs)

	// Configured but missing file.
	s = NewFileStore("", filepath.Join(t.TempDir(), "absent.json"))
	reqs, err = s.LoadRequirements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestFileStoreApplyStatusChange(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")
	ctx := context.Background()

	err := s.ApplyStatusChange(ctx, mustTaskID(t, 2), domain.StatusInProgress)
	require.NoError(t, err)

	items, err := s.LoadWorkItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, items[1].Status)
	// The untouched sibling survives the rewrite.
	assert.Equal(t, domain.StatusDone, items[0].Status)
}

func TestFileStoreApplyStatusChangeUnknownItem(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")

	err := s.ApplyStatusChange(context.Background(), mustTaskID(t, 42), domain.StatusDone)
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeTaskNotFound, engineErr.Code)
}

func TestFileStoreApplyStatusChangeRejectsBadStatus(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")

	err := s.ApplyStatusChange(context.Background(), mustTaskID(t, 1), domain.Status("finished"))
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeTaskBadStatus, engineErr.Code)
}

func TestFileStoreApplyNewSubtasks(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")
	ctx := context.Background()

	parent := mustTaskID(t, 2)
	subtasks := []task.WorkItem{
		{ID: mustSubtaskID(t, 2, 1), Title: "Define routes", Status: domain.StatusPending},
		{ID: mustSubtaskID(t, 2, 2), Title: "Wire handlers", Status: domain.StatusPending},
	}

	require.NoError(t, s.ApplyNewSubtasks(ctx, parent, subtasks))

	items, err := s.LoadWorkItems(ctx)
	require.NoError(t, err)
	require.Len(t, items[1].Subtasks, 2)
	assert.Equal(t, mustSubtaskID(t, 2, 1), items[1].Subtasks[0].ID)
	assert.Equal(t, "Wire handlers", items[1].Subtasks[1].Title)
}

func TestFileStoreApplyNewSubtasksRejectsForeignParent(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")

	err := s.ApplyNewSubtasks(context.Background(), mustTaskID(t, 2), []task.WorkItem{
		{ID: mustSubtaskID(t, 1, 1), Title: "Wrong home", Status: domain.StatusPending},
	})
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeTaskInvalid, engineErr.Code)
}

func TestFileStoreApplyNewSubtasksRejectsDuplicate(t *testing.T) {
	path := writeTemp(t, "tasks.json", sampleTasks)
	s := NewFileStore(path, "")
	ctx := context.Background()

	subtasks := []task.WorkItem{
		{ID: mustSubtaskID(t, 2, 1), Title: "Define routes", Status: domain.StatusPending},
	}
	require.NoError(t, s.ApplyNewSubtasks(ctx, mustTaskID(t, 2), subtasks))

	err := s.ApplyNewSubtasks(ctx, mustTaskID(t, 2), subtasks)
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.ErrCodeTaskDuplicateID, engineErr.Code)
}

func TestFileStoreApplyRequirementChanges(t *testing.T) {
	path := writeTemp(t, "requirements.json", sampleRequirements)
	s := NewFileStore("", path)
	ctx := context.Background()

	changes := []cascade.Change{
		{
			RequirementID:  "req-001",
			PreviousStatus: domain.RequirementPending,
			NewStatus:      domain.RequirementInProgress,
		},
		// Unknown requirement ids are silently skipped.
		{
			RequirementID: "req-999",
			NewStatus:     domain.RequirementDone,
		},
	}
	require.NoError(t, s.ApplyRequirementChanges(ctx, changes))

	reqs, err := s.LoadRequirements(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, domain.RequirementInProgress, reqs[0].Status)
}

func TestFileStoreApplyRequirementChangesNoop(t *testing.T) {
	s := NewFileStore("", filepath.Join(t.TempDir(), "never-created.json"))
	require.NoError(t, s.ApplyRequirementChanges(context.Background(), nil))
}
