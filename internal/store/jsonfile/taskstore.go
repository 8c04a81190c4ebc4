// Package jsonfile implements the task store as a flat JSON file that is
// rewritten in full after every mutation.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/core/task"
)

// seqFile is the sidecar that persists the id counter so tasks.json keeps
// its plain array shape.
type seqFile struct {
	NextID int `json:"next_id"`
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the clock used for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *TaskStore) { s.log = l }
}

// TaskStore owns the in-memory task collection and its JSON file.
// All methods are safe for concurrent use.
type TaskStore struct {
	path string
	now  func() time.Time
	log  zerolog.Logger

	mu     sync.RWMutex
	tasks  []task.Task
	nextID int
	// synced holds the task file bytes last read or written by this store.
	synced []byte
}

// Open creates a store backed by path and loads it. Open never fails: a
// missing or unreadable file yields an empty collection.
func Open(ctx context.Context, path string, opts ...Option) *TaskStore {
	s := &TaskStore{
		path: path,
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Load(ctx)
	return s
}

// Path returns the task file path.
func (s *TaskStore) Path() string {
	return s.path
}

// Load re-reads the task file, replacing the in-memory collection, and
// returns a copy of what was loaded. A missing file, an empty file or
// malformed JSON all produce an empty collection. Malformed files are moved
// aside to <path>.corrupt so the next write does not destroy them.
func (s *TaskStore) Load(ctx context.Context) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = s.readTasks(ctx)
	s.nextID = s.readNextID(ctx)

	return slices.Clone(s.tasks)
}

// Refresh reloads the task file only when its content differs from what this
// store last read or wrote. changed is false for the store's own writes, so
// watchers that see those writes do not cause spurious reloads.
func (s *TaskStore) Refresh(ctx context.Context) (tasks []task.Task, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil && bytes.Equal(data, s.synced):
		return slices.Clone(s.tasks), false
	case errors.Is(err, os.ErrNotExist) && s.synced == nil:
		return slices.Clone(s.tasks), false
	}

	s.tasks = s.readTasks(ctx)
	s.nextID = s.readNextID(ctx)
	return slices.Clone(s.tasks), true
}

// Add appends a new pending task and persists the collection.
func (s *TaskStore) Add(ctx context.Context, title string, priority task.Priority, due task.DueDate) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevNext := slices.Clone(s.tasks), s.nextID

	t := task.New(s.nextID, title, priority, due, s.now())
	s.tasks = append(s.tasks, t)
	s.nextID++

	if err := s.persist(prev, prevNext); err != nil {
		return task.Task{}, err
	}

	s.log.Debug().Ctx(ctx).Int("task_id", t.ID).Str("title", t.Title).Msg("task added")
	return t, nil
}

// Delete removes every task with the given id and persists the collection,
// even when nothing matched. It returns the number of removed tasks.
func (s *TaskStore) Delete(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevNext := slices.Clone(s.tasks), s.nextID

	s.tasks = slices.DeleteFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
	removed := len(prev) - len(s.tasks)

	if err := s.persist(prev, prevNext); err != nil {
		return 0, err
	}

	s.log.Debug().Ctx(ctx).Int("task_id", id).Int("removed", removed).Msg("task deleted")
	return removed, nil
}

// ToggleStatus flips the completed flag of the first task with the given id
// and persists the collection. found is false when no task matched.
func (s *TaskStore) ToggleStatus(ctx context.Context, id int) (t task.Task, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevNext := slices.Clone(s.tasks), s.nextID

	if i := s.indexOf(id); i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
		t, found = s.tasks[i], true
	}

	if err := s.persist(prev, prevNext); err != nil {
		return task.Task{}, false, err
	}

	s.log.Debug().Ctx(ctx).Int("task_id", id).Bool("found", found).Bool("completed", t.Completed).Msg("task toggled")
	return t, found, nil
}

// Update applies patch to the first task with the given id and persists the
// collection. found is false when no task matched. An invalid patch returns
// task.ErrInvalidPatch without touching the collection or the file.
func (s *TaskStore) Update(ctx context.Context, id int, patch task.Patch) (t task.Task, found bool, err error) {
	if err := patch.Validate(); err != nil {
		return task.Task{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevNext := slices.Clone(s.tasks), s.nextID

	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = patch.Apply(s.tasks[i])
		t, found = s.tasks[i], true
	}

	if err := s.persist(prev, prevNext); err != nil {
		return task.Task{}, false, err
	}

	s.log.Debug().Ctx(ctx).Int("task_id", id).Bool("found", found).Msg("task updated")
	return t, found, nil
}

// Get returns the first task with the given id.
func (s *TaskStore) Get(id int) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], nil
	}
	return task.Task{}, task.ErrNotFound
}

// Sorted returns a sorted copy of the collection. See task.Sort.
func (s *TaskStore) Sorted(key task.SortKey) []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return task.Sort(s.tasks, key)
}

// Snapshot returns a copy of the collection in insertion order. The copy is
// taken under the read lock and is safe to use while the store mutates.
func (s *TaskStore) Snapshot() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.tasks)
	if out == nil {
		out = []task.Task{}
	}
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *TaskStore) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

func (s *TaskStore) seqPath() string {
	return s.path + ".seq"
}

// readTasks loads the task array from disk. Caller must hold the write lock.
func (s *TaskStore) readTasks(ctx context.Context) []task.Task {
	s.synced = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Ctx(ctx).Err(err).Str("path", s.path).Msg("cannot read task file, starting empty")
		}
		return []task.Task{}
	}

	if len(data) == 0 {
		s.synced = data
		return []task.Task{}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		aside := s.path + ".corrupt"
		if rerr := os.Rename(s.path, aside); rerr != nil {
			s.log.Warn().Ctx(ctx).Err(rerr).Str("path", s.path).Msg("cannot move corrupt task file aside")
		}
		s.log.Warn().Ctx(ctx).Err(err).Str("path", s.path).Str("moved_to", aside).Msg("task file is not valid JSON, starting empty")
		return []task.Task{}
	}

	if tasks == nil {
		tasks = []task.Task{}
	}
	s.synced = data
	return tasks
}

// readNextID resolves the next id from the sidecar and the loaded tasks,
// whichever is higher. Caller must hold the write lock.
func (s *TaskStore) readNextID(ctx context.Context) int {
	next := 1
	for _, t := range s.tasks {
		next = max(next, t.ID+1)
	}

	data, err := os.ReadFile(s.seqPath())
	if err != nil {
		return next
	}

	var seq seqFile
	if err := json.Unmarshal(data, &seq); err != nil {
		s.log.Debug().Ctx(ctx).Err(err).Msg("ignoring unreadable id sequence file")
		return next
	}

	return max(next, seq.NextID)
}

// persist saves the collection. When the write fails the in-memory tasks and
// id counter are put back to prev so memory keeps matching the file. Caller
// must hold the write lock.
func (s *TaskStore) persist(prev []task.Task, prevNext int) error {
	if err := s.save(); err != nil {
		s.tasks, s.nextID = prev, prevNext
		return err
	}
	return nil
}

// save writes the id counter, then the whole collection. The task file is
// written last so a failed save never leaves it ahead of memory. Caller must
// hold the write lock.
func (s *TaskStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tasks := s.tasks
	if tasks == nil {
		tasks = []task.Task{}
	}

	seq, err := json.Marshal(seqFile{NextID: s.nextID})
	if err != nil {
		return err
	}
	if err := writeAtomic(s.seqPath(), seq); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}

	s.synced = data
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
