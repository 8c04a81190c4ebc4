package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskdue/internal/store/jsonfile"
	"github.com/colonyops/taskdue/internal/tracker"
)

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled. The reminder loop runs alongside it when enabled in config.
func Run(ctx context.Context, app *tracker.App, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inbox := NewNotificationInbox()
	app.Bus.Subscribe(inbox.Push)

	var changes <-chan struct{}
	watcher, err := jsonfile.NewFileWatcher(app.Tasks.Path(), log.With().Str("cmp", "watcher").Logger())
	if err != nil {
		log.Warn().Err(err).Msg("task file watcher unavailable")
	} else {
		defer func() { _ = watcher.Close() }()
		changes = watcher.Changes()
	}

	if app.Config.Reminder.IsEnabled() {
		go func() {
			_ = app.Reminders.Run(ctx)
		}()
	}

	p := tea.NewProgram(New(ctx, app, inbox, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
