package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Interstellar-code/taskmaster/internal/cascade"
	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/errors"
	"github.com/Interstellar-code/taskmaster/internal/graph"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// FileStore keeps the task collection and the requirement documents in two
// JSON files. It serializes every mutation through a full
// load-modify-save cycle, which matches the engine's single-caller model.
type FileStore struct {
	tasksPath        string
	requirementsPath string
}

var _ Store = (*FileStore)(nil)

// requirementsFile is the on-disk requirement collection.
type requirementsFile struct {
	Requirements []task.Requirement `json:"requirements"`
}

// NewFileStore creates a store over the given file paths. The requirements
// path may be empty when the project tracks no requirement documents.
func NewFileStore(tasksPath, requirementsPath string) *FileStore {
	return &FileStore{
		tasksPath:        tasksPath,
		requirementsPath: requirementsPath,
	}
}

// LoadWorkItems reads and validates the task collection, including the
// dependency graph invariants.
func (s *FileStore) LoadWorkItems(_ context.Context) ([]task.WorkItem, error) {
	if _, err := os.Stat(s.tasksPath); os.IsNotExist(err) {
		return nil, errors.NewTasksFileNotFoundError(s.tasksPath)
	}

	f, err := task.LoadFile(s.tasksPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "load work items", err)
	}
	if err := graph.Validate(f.Tasks); err != nil {
		return nil, err
	}
	return f.Tasks, nil
}

// LoadRequirements reads the requirement documents. A missing or
// unconfigured requirements file yields an empty collection, not an error.
func (s *FileStore) LoadRequirements(_ context.Context) ([]task.Requirement, error) {
	if s.requirementsPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.requirementsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "load requirements", err)
	}

	var f requirementsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnmarshal, "parse requirements", err)
	}
	return f.Requirements, nil
}

// ApplyStatusChange sets one item's status and persists the collection.
func (s *FileStore) ApplyStatusChange(ctx context.Context, id domain.ItemID, status domain.Status) error {
	if err := status.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeTaskBadStatus, "apply status change", err)
	}

	items, err := s.LoadWorkItems(ctx)
	if err != nil {
		return err
	}

	index := task.Index(items)
	item, ok := index[id]
	if !ok {
		return errors.New(errors.ErrCodeTaskNotFound,
			fmt.Sprintf("item %s not found", id))
	}
	item.Status = status

	return s.saveItems(items)
}

// ApplyNewSubtasks attaches decomposed subtasks to their parent and
// persists the collection. Subtask ids must already be qualified under the
// parent.
func (s *FileStore) ApplyNewSubtasks(ctx context.Context, parent domain.ItemID, subtasks []task.WorkItem) error {
	if parent.IsSubtask() {
		return errors.New(errors.ErrCodeTaskInvalid,
			fmt.Sprintf("cannot attach subtasks to subtask %s", parent))
	}

	items, err := s.LoadWorkItems(ctx)
	if err != nil {
		return err
	}

	index := task.Index(items)
	item, ok := index[parent]
	if !ok {
		return errors.New(errors.ErrCodeTaskNotFound,
			fmt.Sprintf("item %s not found", parent))
	}

	for _, sub := range subtasks {
		if !sub.ID.IsSubtask() || sub.ID.Task() != parent.Task() {
			return errors.New(errors.ErrCodeTaskInvalid,
				fmt.Sprintf("subtask %s does not belong to parent %s", sub.ID, parent))
		}
		if _, exists := index[sub.ID]; exists {
			return errors.New(errors.ErrCodeTaskDuplicateID,
				fmt.Sprintf("subtask %s already exists", sub.ID))
		}
	}
	item.Subtasks = append(item.Subtasks, subtasks...)

	return s.saveItems(items)
}

// ApplyRequirementChanges persists cascade-derived requirement status
// transitions. Unknown requirement ids are skipped, matching the cascade's
// own tolerance.
func (s *FileStore) ApplyRequirementChanges(ctx context.Context, changes []cascade.Change) error {
	if len(changes) == 0 {
		return nil
	}

	reqs, err := s.LoadRequirements(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*task.Requirement, len(reqs))
	for i := range reqs {
		byID[reqs[i].ID] = &reqs[i]
	}
	for _, change := range changes {
		if req, ok := byID[change.RequirementID]; ok {
			req.Status = change.NewStatus
		}
	}

	data, err := json.MarshalIndent(requirementsFile{Requirements: reqs}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal requirements", err)
	}
	if err := os.WriteFile(s.requirementsPath, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write requirements", err)
	}
	return nil
}

func (s *FileStore) saveItems(items []task.WorkItem) error {
	if err := task.SaveFile(&task.File{Tasks: items}, s.tasksPath); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "save work items", err)
	}
	return nil
}
