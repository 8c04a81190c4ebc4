package tracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/core/validate"
	"github.com/colonyops/taskdue/internal/store/jsonfile"
)

// TaskService wraps the JSON task store with input validation and hooks for
// outside edits of the task file. Lookups on unknown ids are reported to the caller instead of being
// silently ignored.
type TaskService struct {
	store *jsonfile.TaskStore
	log   zerolog.Logger

	mu         sync.Mutex
	onExternal []func()
}

// NewTaskService creates a new TaskService.
func NewTaskService(store *jsonfile.TaskStore, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		log:   log.With().Str("component", "task-service").Logger(),
	}
}

// OnExternalChange registers fn to run when Reload finds that the task file
// was edited outside this service. The service's own writes never fire it.
func (s *TaskService) OnExternalChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExternal = append(s.onExternal, fn)
}

// Path returns the backing task file.
func (s *TaskService) Path() string {
	return s.store.Path()
}

// Add validates raw input and stores a new pending task.
func (s *TaskService) Add(ctx context.Context, in validate.Input) (task.Task, error) {
	title, priority, due, err := in.Parsed()
	if err != nil {
		return task.Task{}, err
	}

	t, err := s.store.Add(ctx, title, priority, due)
	if err != nil {
		return task.Task{}, fmt.Errorf("save new task: %w", err)
	}

	return t, nil
}

// Toggle flips the completion state of task id.
func (s *TaskService) Toggle(ctx context.Context, id int) (task.Task, error) {
	t, found, err := s.store.ToggleStatus(ctx, id)
	if err != nil {
		return task.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	if !found {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	return t, nil
}

// Delete removes task id.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if removed == 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	return nil
}

// Update applies patch to task id.
func (s *TaskService) Update(ctx context.Context, id int, patch task.Patch) (task.Task, error) {
	if patch.DueDate.IsSet() {
		if err := validate.DueDate(string(patch.DueDate.Value())); err != nil {
			return task.Task{}, fmt.Errorf("%w: %w", task.ErrInvalidPatch, err)
		}
	}

	t, found, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return task.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	if !found {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	return t, nil
}

// Get returns task id.
func (s *TaskService) Get(id int) (task.Task, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", id, err)
	}
	return t, nil
}

// List returns every task ordered by key.
func (s *TaskService) List(key task.SortKey) []task.Task {
	return s.store.Sorted(key)
}

// Snapshot returns every task in insertion order.
func (s *TaskService) Snapshot() []task.Task {
	return s.store.Snapshot()
}

// Reload re-reads the task file when its content differs from what the
// service last read or wrote. It reports whether anything was reloaded.
func (s *TaskService) Reload(ctx context.Context) bool {
	tasks, changed := s.store.Refresh(ctx)
	if !changed {
		return false
	}

	s.log.Debug().Int("tasks", len(tasks)).Msg("task file reloaded")
	s.externalChange()
	return true
}

func (s *TaskService) externalChange() {
	s.mu.Lock()
	hooks := make([]func(), len(s.onExternal))
	copy(hooks, s.onExternal)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
