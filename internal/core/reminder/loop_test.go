package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/task"
)

type staticSource struct {
	mu    sync.Mutex
	tasks []task.Task
	calls int
}

func (s *staticSource) Snapshot() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return append([]task.Task(nil), s.tasks...)
}

func newTestLoop(src Source, rec *recorder, interval time.Duration) *Loop {
	l := NewLoop(NewChecker(rec, DefaultWindow, zerolog.Nop()), src, interval, zerolog.Nop())
	l.now = func() time.Time { return newYear }
	return l
}

func TestLoop_ScansImmediatelyAndStopsOnCancel(t *testing.T) {
	src := &staticSource{tasks: []task.Task{{ID: 1, Title: "OS", DueDate: "2024-01-01"}}}
	rec := &recorder{}
	l := newTestLoop(src, rec, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestLoop_TicksAndTriggers(t *testing.T) {
	src := &staticSource{tasks: []task.Task{{ID: 1, Title: "OS", DueDate: "2024-01-01"}}}
	rec := &recorder{}
	l := newTestLoop(src, rec, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.count() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestLoop_Trigger(t *testing.T) {
	src := &staticSource{}
	rec := &recorder{}
	l := newTestLoop(src, rec, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls == 1
	}, 2*time.Second, 10*time.Millisecond)

	l.Trigger()

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoop_TriggerCoalesces(t *testing.T) {
	l := newTestLoop(&staticSource{}, &recorder{}, time.Hour)

	l.Trigger()
	l.Trigger()
	l.Trigger()

	assert.Len(t, l.trigger, 1)
}

func TestLoop_ScanUsesSnapshot(t *testing.T) {
	src := &staticSource{tasks: []task.Task{
		{ID: 1, Title: "due", DueDate: "2024-01-01"},
		{ID: 2, Title: "later", DueDate: "2024-03-01"},
	}}
	l := newTestLoop(src, &recorder{}, time.Hour)

	got := l.Scan(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "due", got[0].Task.Title)
}
