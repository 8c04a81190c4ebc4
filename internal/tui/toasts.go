package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdue/internal/core/notify"
	"github.com/colonyops/taskdue/internal/core/styles"
)

const (
	toastTTL          = 6 * time.Second
	maxToasts         = 3
	toastTickInterval = 200 * time.Millisecond
	toastWidth        = 48
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// toastStack holds the visible notifications, oldest first. It is only
// touched from the Bubble Tea update loop.
type toastStack struct {
	items   []toast
	ticking bool
}

// push adds n, evicting the oldest toast past maxToasts.
func (s *toastStack) push(n notify.Notification) {
	s.items = append(s.items, toast{notification: n, remaining: toastTTL})
	if len(s.items) > maxToasts {
		s.items = s.items[len(s.items)-maxToasts:]
	}
}

// tick ages every toast by d and drops the expired ones.
func (s *toastStack) tick(d time.Duration) {
	alive := s.items[:0]
	for _, t := range s.items {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	s.items = alive
}

// dismiss removes the newest toast.
func (s *toastStack) dismiss() {
	if len(s.items) > 0 {
		s.items = s.items[:len(s.items)-1]
	}
}

func (s *toastStack) empty() bool {
	return len(s.items) == 0
}

// view renders the stack right-aligned within width.
func (s *toastStack) view(width int) string {
	if s.empty() {
		return ""
	}

	rendered := make([]string, 0, len(s.items))
	for _, t := range s.items {
		rendered = append(rendered, lipgloss.PlaceHorizontal(width, lipgloss.Right, renderToast(t.notification)))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	var style lipgloss.Style
	switch n.Level {
	case notify.LevelError:
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		style = styles.ToastWarnStyle
	default:
		style = styles.ToastInfoStyle
	}

	body := n.Message
	if n.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(n.Title) + "\n" + n.Message
	}
	return style.Width(toastWidth).Render(body)
}
