// Package tracker wires the task store, the notification bus and the reminder
// loop into the single App consumed by commands and the TUI.
package tracker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/core/config"
	"github.com/colonyops/taskdue/internal/core/notify"
	"github.com/colonyops/taskdue/internal/core/notify/desktop"
	"github.com/colonyops/taskdue/internal/core/reminder"
	"github.com/colonyops/taskdue/internal/store/jsonfile"
	"github.com/colonyops/taskdue/pkg/executil"
)

// App is the central entry point for all taskdue operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks     *TaskService
	Reminders *reminder.Loop
	Checker   *reminder.Checker
	Bus       *notify.Bus
	Config    *config.Config
}

// NewApp opens the task store named by cfg and builds the services around it.
func NewApp(ctx context.Context, cfg *config.Config, exec executil.Executor, log zerolog.Logger) *App {
	store := jsonfile.Open(ctx, cfg.TasksPath(), jsonfile.WithLogger(log.With().Str("cmp", "store").Logger()))
	bus := notify.NewBus(log.With().Str("cmp", "notify").Logger())
	ConfigureSinks(bus, cfg.Notify, exec, log)

	checker := reminder.NewChecker(bus, cfg.Reminder.Window, log.With().Str("cmp", "reminder").Logger())
	loop := reminder.NewLoop(checker, store, cfg.Reminder.Interval, log.With().Str("cmp", "reminder").Logger())

	tasks := NewTaskService(store, log)
	tasks.OnExternalChange(loop.Trigger)

	return &App{
		Tasks:     tasks,
		Reminders: loop,
		Checker:   checker,
		Bus:       bus,
		Config:    cfg,
	}
}

// ConfigureSinks attaches the desktop sink to bus according to cfg. With no
// explicit setting the sink is only attached when its binary is installed.
// It reports whether the sink was attached.
func ConfigureSinks(bus *notify.Bus, cfg config.NotifyConfig, exec executil.Executor, log zerolog.Logger) bool {
	sink := desktop.New(exec, desktop.Options{AppName: cfg.AppName, Timeout: cfg.Timeout})

	switch {
	case cfg.Desktop != nil && !*cfg.Desktop:
		log.Debug().Msg("desktop notifications disabled")
		return false
	case cfg.Desktop == nil && !sink.Available():
		log.Debug().Str("binary", sink.Binary()).Msg("desktop notifier not found, skipping")
		return false
	}

	bus.AddSink(sink)
	return true
}
