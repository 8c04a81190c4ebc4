package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/taskdue/internal/core/notify"
)

// inboxCapacity bounds how many undrained notifications are kept.
const inboxCapacity = 50

type drainNotificationsMsg struct{}

// NotificationInbox collects notifications published from other goroutines
// and wakes the update loop with a single coalesced signal.
type NotificationInbox struct {
	mu     sync.Mutex
	items  []notify.Notification
	signal chan struct{}
}

// NewNotificationInbox creates an empty inbox.
func NewNotificationInbox() *NotificationInbox {
	return &NotificationInbox{signal: make(chan struct{}, 1)}
}

// Push queues n. It never blocks; past inboxCapacity the oldest entries are dropped.
func (b *NotificationInbox) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.items = append(b.items, n)
	if len(b.items) > inboxCapacity {
		b.items = b.items[len(b.items)-inboxCapacity:]
	}
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns and clears everything queued.
func (b *NotificationInbox) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == 0 {
		return nil
	}

	out := b.items
	b.items = nil
	return out
}

// Wait returns a command that blocks until something is queued.
func (b *NotificationInbox) Wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
