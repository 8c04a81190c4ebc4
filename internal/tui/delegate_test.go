package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
)

func TestTaskDelegate_RenderRow(t *testing.T) {
	d := taskDelegate{now: time.Now}

	row := d.renderRow(task.Task{ID: 7, Title: "Revise graphs", Priority: task.PriorityHigh, DueDate: "2030-01-01"}, 100, false)
	assert.Contains(t, row, "[ ]")
	assert.Contains(t, row, "#7")
	assert.Contains(t, row, "Revise graphs")
	assert.Contains(t, row, "High")
	assert.Contains(t, row, "2030-01-01")

	done := d.renderRow(task.Task{ID: 8, Title: "Mock", Priority: task.PriorityLow, Completed: true}, 100, true)
	assert.Contains(t, done, "[x]")
	assert.Contains(t, done, "-")
}

func TestTaskDelegate_DueStyle(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	d := taskDelegate{now: func() time.Time { return now }}

	tests := []struct {
		name string
		task task.Task
		want lipgloss.Style
	}{
		{name: "overdue", task: task.Task{DueDate: "2024-01-09"}, want: styles.ErrorStyle},
		{name: "today", task: task.Task{DueDate: "2024-01-10"}, want: styles.WarningStyle},
		{name: "tomorrow", task: task.Task{DueDate: "2024-01-11"}, want: styles.WarningStyle},
		{name: "later", task: task.Task{DueDate: "2024-02-01"}, want: styles.TextStyle},
		{name: "completed", task: task.Task{DueDate: "2024-01-09", Completed: true}, want: styles.MutedStyle},
		{name: "malformed", task: task.Task{DueDate: "soon"}, want: styles.ErrorStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.GetForeground(), d.dueStyle(tt.task).GetForeground())
		})
	}
}
