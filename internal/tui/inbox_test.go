package tui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/notify"
)

func TestNotificationInbox_DrainEmpty(t *testing.T) {
	assert.Nil(t, NewNotificationInbox().Drain())
}

func TestNotificationInbox_PushDrain(t *testing.T) {
	b := NewNotificationInbox()
	b.Push(notify.Notification{Message: "first"})
	b.Push(notify.Notification{Message: "second"})

	msg := b.Wait()()
	assert.IsType(t, drainNotificationsMsg{}, msg)

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Message)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Nil(t, b.Drain())
}

func TestNotificationInbox_Capacity(t *testing.T) {
	b := NewNotificationInbox()
	for i := range inboxCapacity + 5 {
		b.Push(notify.Notification{Message: fmt.Sprint(i)})
	}

	items := b.Drain()
	require.Len(t, items, inboxCapacity)
	assert.Equal(t, "5", items[0].Message)
}

func TestNotificationInbox_ConcurrentPush(t *testing.T) {
	b := NewNotificationInbox()

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Push(notify.Notification{Message: fmt.Sprint(i)})
		}()
	}
	wg.Wait()

	assert.Len(t, b.Drain(), 40)
}
