package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/core/logging"
	"github.com/colonyops/taskdue/internal/core/task"
)

// Source provides an immutable copy of the current tasks.
type Source interface {
	Snapshot() []task.Task
}

// Loop runs the checker periodically against a Source until its context is
// cancelled.
type Loop struct {
	checker  *Checker
	source   Source
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
	trigger  chan struct{}
}

// NewLoop creates a loop that scans source every interval. A non-positive
// interval uses DefaultInterval.
func NewLoop(checker *Checker, source Source, interval time.Duration, log zerolog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		checker:  checker,
		source:   source,
		interval: interval,
		now:      time.Now,
		log:      log,
		trigger:  make(chan struct{}, 1),
	}
}

// Run scans immediately, then on every tick or Trigger, and returns when ctx
// is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Info().Dur("interval", l.interval).Dur("window", l.checker.Window()).Msg("reminder loop started")
	l.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("reminder loop stopped")
			return nil
		case <-ticker.C:
			l.Scan(ctx)
		case <-l.trigger:
			l.Scan(ctx)
		}
	}
}

// Trigger requests an immediate scan from a running loop. Requests made
// while one is already pending are coalesced.
func (l *Loop) Trigger() {
	select {
	case l.trigger <- struct{}{}:
	default:
	}
}

// Scan runs a single check against a fresh snapshot of the source.
func (l *Loop) Scan(ctx context.Context) []Reminder {
	ctx = logging.WithScanID(ctx, uuid.NewString())

	tasks := l.source.Snapshot()
	reminders := l.checker.CheckDue(ctx, tasks, l.now())

	l.log.Debug().Ctx(ctx).Int("tasks", len(tasks)).Int("due", len(reminders)).Msg("reminder scan finished")
	return reminders
}
