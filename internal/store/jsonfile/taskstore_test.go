package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/task"
)

var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

func newStore(t *testing.T) (*TaskStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return Open(context.Background(), path, WithClock(func() time.Time { return fixedNow })), path
}

func readRaw(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestTaskStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		s, _ := newStore(t)
		assert.Empty(t, s.Snapshot())
		assert.NotNil(t, s.Snapshot())
	})

	t.Run("empty file is empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		s := Open(ctx, path)
		assert.Empty(t, s.Snapshot())
	})

	t.Run("malformed file is empty and moved aside", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		s := Open(ctx, path)
		assert.Empty(t, s.Snapshot())

		kept, err := os.ReadFile(path + ".corrupt")
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(kept))
	})

	t.Run("existing file from older versions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		legacy := `[
    {"id": 1, "title": "Revise DBMS", "priority": "High", "due_date": "2024-01-03", "completed": false, "created_at": "2023-12-30 10:00:00"},
    {"id": 2, "title": "Mock test", "priority": "Low", "due_date": null, "completed": true, "created_at": "2023-12-30 11:00:00"}
]`
		require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

		s := Open(ctx, path)
		tasks := s.Snapshot()
		require.Len(t, tasks, 2)
		assert.Equal(t, "Revise DBMS", tasks[0].Title)
		assert.Equal(t, task.DueDate("2024-01-03"), tasks[0].DueDate)
		assert.False(t, tasks[1].DueDate.IsSet())
		assert.True(t, tasks[1].Completed)

		added, err := s.Add(ctx, "Next", task.PriorityMedium, task.NoDueDate)
		require.NoError(t, err)
		assert.Equal(t, 3, added.ID)
	})
}

func TestTaskStore_Add(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	got, err := s.Add(ctx, "Solve 2020 paper", task.PriorityHigh, "2024-01-02")
	require.NoError(t, err)

	assert.Equal(t, 1, got.ID)
	assert.False(t, got.Completed)
	assert.Equal(t, "2024-01-01 09:30:00", got.CreatedAt)

	sorted := s.Sorted(task.SortPriority)
	require.Len(t, sorted, 1)
	assert.Equal(t, got, sorted[0])

	raw := readRaw(t, path)
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]any{
		"id":         float64(1),
		"title":      "Solve 2020 paper",
		"priority":   "High",
		"due_date":   "2024-01-02",
		"completed":  false,
		"created_at": "2024-01-01 09:30:00",
	}, raw[0])
}

func TestTaskStore_AddNoDueDateWritesNull(t *testing.T) {
	s, path := newStore(t)

	_, err := s.Add(context.Background(), "Read notes", task.PriorityLow, task.NoDueDate)
	require.NoError(t, err)

	raw := readRaw(t, path)
	require.Contains(t, raw[0], "due_date")
	assert.Nil(t, raw[0]["due_date"])
}

func TestTaskStore_IDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	a, _ := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
	b, _ := s.Add(ctx, "b", task.PriorityLow, task.NoDueDate)

	_, err := s.Delete(ctx, a.ID)
	require.NoError(t, err)

	c, err := s.Add(ctx, "c", task.PriorityLow, task.NoDueDate)
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, c.ID)
	assert.Equal(t, 3, c.ID)

	// Deleting the newest task and reopening must not hand its id out again.
	_, err = s.Delete(ctx, c.ID)
	require.NoError(t, err)

	reopened := Open(ctx, path)
	d, err := reopened.Add(ctx, "d", task.PriorityLow, task.NoDueDate)
	require.NoError(t, err)
	assert.Equal(t, 4, d.ID)
}

func TestTaskStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes matching task", func(t *testing.T) {
		s, _ := newStore(t)
		a, _ := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
		_, _ = s.Add(ctx, "b", task.PriorityLow, task.NoDueDate)

		removed, err := s.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("unknown id leaves collection unchanged and still persists", func(t *testing.T) {
		s, path := newStore(t)
		_, _ = s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
		before := s.Snapshot()
		require.NoError(t, os.Remove(path))

		removed, err := s.Delete(ctx, 99)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Equal(t, before, s.Snapshot())
		assert.FileExists(t, path)
	})
}

func TestTaskStore_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)
	a, _ := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)

	got, found, err := s.ToggleStatus(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Completed)
	assert.Equal(t, true, readRaw(t, path)[0]["completed"])

	got, _, err = s.ToggleStatus(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed, "toggling twice restores the original flag")

	_, found, err = s.ToggleStatus(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTaskStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only changed fields", func(t *testing.T) {
		s, _ := newStore(t)
		a, _ := s.Add(ctx, "Old", task.PriorityLow, "2024-02-01")

		got, found, err := s.Update(ctx, a.ID, task.Patch{Priority: task.Set(task.PriorityHigh)})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Old", got.Title)
		assert.Equal(t, task.PriorityHigh, got.Priority)
		assert.Equal(t, task.DueDate("2024-02-01"), got.DueDate)
		assert.Equal(t, a.CreatedAt, got.CreatedAt)
	})

	t.Run("clears due date", func(t *testing.T) {
		s, _ := newStore(t)
		a, _ := s.Add(ctx, "x", task.PriorityLow, "2024-02-01")

		got, _, err := s.Update(ctx, a.ID, task.Patch{DueDate: task.Clear[task.DueDate]()})
		require.NoError(t, err)
		assert.False(t, got.DueDate.IsSet())
	})

	t.Run("invalid patch is rejected", func(t *testing.T) {
		s, _ := newStore(t)
		a, _ := s.Add(ctx, "x", task.PriorityLow, task.NoDueDate)

		_, _, err := s.Update(ctx, a.ID, task.Patch{Title: task.Set("")})
		require.ErrorIs(t, err, task.ErrInvalidPatch)

		got, err := s.Get(a.ID)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Title)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, _ := newStore(t)
		_, found, err := s.Update(ctx, 5, task.Patch{Title: task.Set("y")})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestTaskStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	_, _ = s.Add(ctx, "Low one", task.PriorityLow, task.NoDueDate)
	b, _ := s.Add(ctx, "High one", task.PriorityHigh, "2024-01-05")
	_, _ = s.Add(ctx, "Broken date", task.PriorityMedium, "someday")
	_, _, _ = s.ToggleStatus(ctx, b.ID)

	reloaded := Open(ctx, path)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestTaskStore_Get(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Get(1)
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestTaskStore_SnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, _ = s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)

	snap := s.Snapshot()
	snap[0].Title = "changed"

	got, err := s.Get(snap[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestTaskStore_ConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Add(ctx, "task", task.Priorities()[i%3], task.NoDueDate)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.Sorted(task.SortDueDate)
		}()
	}
	wg.Wait()

	tasks := s.Snapshot()
	require.Len(t, tasks, 10)

	seen := make(map[int]bool)
	for _, tk := range tasks {
		assert.False(t, seen[tk.ID], "duplicate id %d", tk.ID)
		seen[tk.ID] = true
	}
}

func TestTaskStore_FailedSaveRestoresMemory(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	first, err := s.Add(ctx, "kept", task.PriorityHigh, task.NoDueDate)
	require.NoError(t, err)

	// A directory at the temp path makes the atomic write of the task file fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	_, err = s.Add(ctx, "lost", task.PriorityLow, task.NoDueDate)
	require.Error(t, err)

	_, _, err = s.ToggleStatus(ctx, first.ID)
	require.Error(t, err)

	_, _, err = s.Update(ctx, first.ID, task.Patch{Title: task.Set("renamed")})
	require.Error(t, err)

	_, err = s.Delete(ctx, first.ID)
	require.Error(t, err)

	assert.Equal(t, []task.Task{first}, s.Snapshot())

	require.NoError(t, os.Remove(path+".tmp"))

	next, err := s.Add(ctx, "after", task.PriorityLow, task.NoDueDate)
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, next.ID)
	assert.Len(t, readRaw(t, path), 2)
}

func TestTaskStore_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("own writes are not a change", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
		require.NoError(t, err)

		tasks, changed := s.Refresh(ctx)
		assert.False(t, changed)
		assert.Len(t, tasks, 1)
	})

	t.Run("missing file stays unchanged", func(t *testing.T) {
		s, _ := newStore(t)

		_, changed := s.Refresh(ctx)
		assert.False(t, changed)
	})

	t.Run("outside edit is picked up", func(t *testing.T) {
		s, path := newStore(t)
		_, err := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
		require.NoError(t, err)

		edited := `[{"id": 7, "title": "from editor", "priority": "High", "due_date": null, "completed": false, "created_at": "2024-01-01 09:00:00"}]`
		require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

		tasks, changed := s.Refresh(ctx)
		assert.True(t, changed)
		require.Len(t, tasks, 1)
		assert.Equal(t, "from editor", tasks[0].Title)

		_, changed = s.Refresh(ctx)
		assert.False(t, changed)
	})

	t.Run("removed file is a change", func(t *testing.T) {
		s, path := newStore(t)
		_, err := s.Add(ctx, "a", task.PriorityLow, task.NoDueDate)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		tasks, changed := s.Refresh(ctx)
		assert.True(t, changed)
		assert.Empty(t, tasks)
	})
}
