package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
)

// taskItem adapts a task to list.Item.
type taskItem struct {
	task.Task
}

// FilterValue implements list.Item.
func (i taskItem) FilterValue() string { return i.Title }

// taskDelegate renders one task per line.
type taskDelegate struct {
	now func() time.Time
}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate.
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}

	_, _ = fmt.Fprint(w, d.renderRow(it.Task, m.Width(), index == m.Index()))
}

// Column widths outside the title.
const (
	colCheck    = 4
	colID       = 6
	colPriority = 8
	colDue      = 12
)

func (d taskDelegate) renderRow(t task.Task, width int, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	titleWidth := max(width-colCheck-colID-colPriority-colDue-4, 10)
	title := ansi.Truncate(t.Title, titleWidth, "…")

	titleStyle := styles.TextStyle
	switch {
	case t.Completed:
		titleStyle = styles.CompletedStyle
	case selected:
		titleStyle = styles.HeaderStyle
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colCheck).Render(check),
		styles.MutedStyle.Width(colID).Render(fmt.Sprintf("#%d", t.ID)),
		titleStyle.Width(titleWidth).Render(title),
		" ",
		styles.PriorityStyle(t.Priority).Width(colPriority).Render(string(t.Priority)),
		d.dueStyle(t).Width(colDue).Render(t.DueDate.String()),
	)

	if selected {
		return styles.SelectedStyle.Render(row)
	}
	return "  " + row
}

// dueStyle highlights overdue and due-today pending tasks.
func (d taskDelegate) dueStyle(t task.Task) lipgloss.Style {
	if t.Completed || !t.DueDate.IsSet() {
		return styles.MutedStyle
	}

	now := d.now()
	due, err := t.DueDate.Time(now.Location())
	if err != nil {
		return styles.ErrorStyle
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case due.Before(today):
		return styles.ErrorStyle
	case due.Sub(today) <= 24*time.Hour:
		return styles.WarningStyle
	default:
		return styles.TextStyle
	}
}
