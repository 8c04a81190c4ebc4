package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/notify"
)

func TestToastStack_PushEvictsOldest(t *testing.T) {
	var s toastStack

	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		s.push(notify.Notification{Message: msg})
	}

	require.Len(t, s.items, maxToasts)
	assert.Equal(t, "c", s.items[0].notification.Message)
	assert.Equal(t, toastTTL, s.items[0].remaining)
}

func TestToastStack_TickExpires(t *testing.T) {
	var s toastStack
	s.push(notify.Notification{Message: "old"})
	s.push(notify.Notification{Message: "new"})
	s.items[0].remaining = 100 * time.Millisecond

	s.tick(200 * time.Millisecond)

	require.Len(t, s.items, 1)
	assert.Equal(t, "new", s.items[0].notification.Message)
	assert.Equal(t, toastTTL-200*time.Millisecond, s.items[0].remaining)
}

func TestToastStack_Dismiss(t *testing.T) {
	var s toastStack
	s.dismiss()
	assert.True(t, s.empty())

	s.push(notify.Notification{Message: "first"})
	s.push(notify.Notification{Message: "second"})
	s.dismiss()

	require.Len(t, s.items, 1)
	assert.Equal(t, "first", s.items[0].notification.Message)
}

func TestToastStack_View(t *testing.T) {
	var s toastStack
	assert.Empty(t, s.view(80))

	s.push(notify.Notification{Level: notify.LevelWarning, Title: "Task Due Soon!", Message: "Task 'OS' is due 2024-01-01"})
	s.push(notify.Notification{Level: notify.LevelError, Message: "save failed"})

	out := s.view(80)
	assert.Contains(t, out, "Task Due Soon!")
	assert.Contains(t, out, "save failed")
	assert.Less(t, strings.Index(out, "Task Due Soon!"), strings.Index(out, "save failed"))
}
