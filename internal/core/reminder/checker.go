// Package reminder scans tasks for approaching due dates and raises
// notifications for them.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/core/logging"
	"github.com/colonyops/taskdue/internal/core/notify"
	"github.com/colonyops/taskdue/internal/core/task"
)

const (
	// DefaultWindow is how far ahead a due date triggers a reminder.
	DefaultWindow = 24 * time.Hour
	// DefaultInterval is the time between background scans.
	DefaultInterval = time.Hour
	// AlertTitle is the title of every due-soon notification.
	AlertTitle = "Task Due Soon!"
)

// Reminder is a task found due within the window during a scan.
type Reminder struct {
	Task      task.Task
	Due       time.Time
	Remaining time.Duration
}

// Notification renders the reminder as a user-facing alert.
func (r Reminder) Notification() notify.Notification {
	return notify.Notification{
		Level:   notify.LevelWarning,
		Title:   AlertTitle,
		Message: fmt.Sprintf("Task '%s' is due %s", r.Task.Title, r.Task.DueDate),
	}
}

// Checker is stateless: every call re-evaluates every task, so a task stays
// re-notified on each scan until it leaves the window or is completed.
type Checker struct {
	notifier notify.Notifier
	window   time.Duration
	log      zerolog.Logger
}

// NewChecker creates a checker that reports to notifier. A nil notifier
// only collects reminders. A non-positive window uses DefaultWindow.
func NewChecker(notifier notify.Notifier, window time.Duration, log zerolog.Logger) *Checker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Checker{notifier: notifier, window: window, log: log}
}

// Window returns the look-ahead window.
func (c *Checker) Window() time.Duration {
	return c.window
}

// CheckDue emits one notification for every pending task whose due date
// lies in [now, now+window]. Due dates are midnight in now's location.
// Tasks with malformed due dates are logged and skipped.
func (c *Checker) CheckDue(ctx context.Context, tasks []task.Task, now time.Time) []Reminder {
	var out []Reminder

	for _, t := range tasks {
		if !t.DueDate.IsSet() || t.Completed {
			continue
		}

		due, err := t.DueDate.Time(now.Location())
		if err != nil {
			c.log.Warn().Ctx(logging.WithTaskID(ctx, t.ID)).Err(err).Msg("skipping task with malformed due date")
			continue
		}

		remaining := due.Sub(now)
		if remaining < 0 || remaining > c.window {
			continue
		}

		r := Reminder{Task: t, Due: due, Remaining: remaining}
		out = append(out, r)

		if c.notifier != nil {
			c.notifier.Notify(logging.WithTaskID(ctx, t.ID), r.Notification())
		}
	}

	return out
}
