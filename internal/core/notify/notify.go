// Package notify carries user-facing alerts from the reminder checker to
// whatever can display them: the desktop notification service, the TUI, logs.
package notify

import (
	"context"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single alert with a short title and a message body.
type Notification struct {
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
}

// Sink delivers notifications somewhere a user can see them.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Notifier accepts notifications for best-effort delivery. Implementations
// never report delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc struct {
	ID string
	Fn func(ctx context.Context, n Notification) error
}

// Name returns the sink identifier.
func (f SinkFunc) Name() string { return f.ID }

// Send calls the wrapped function.
func (f SinkFunc) Send(ctx context.Context, n Notification) error { return f.Fn(ctx, n) }
