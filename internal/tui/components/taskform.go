package components

import (
	"github.com/charmbracelet/huh"

	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/core/validate"
)

// priorityOptions lists priorities in display order.
func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		opts = append(opts, huh.NewOption(string(p), string(p)))
	}
	return opts
}

// NewTaskForm builds the add/edit task form. Values are written to in as the
// user types; in should be pre-filled when editing.
func NewTaskForm(heading string, in *validate.Input) *huh.Form {
	if in.Priority == "" {
		in.Priority = string(task.DefaultPriority)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(heading).
				Description("Task title").
				Validate(validate.Title).
				Value(&in.Title),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&in.Priority),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, leave blank for none").
				Placeholder("YYYY-MM-DD").
				Validate(validate.DueDate).
				Value(&in.DueDate),
		),
	)
}

// NewConfirmForm builds a single yes/no question.
func NewConfirmForm(title, description string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	)
}
