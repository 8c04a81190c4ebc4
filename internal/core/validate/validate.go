// Package validate checks user-supplied task input before it reaches the store.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskdue/internal/core/task"
)

// Title validates a task title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	return nil
}

// Priority validates a priority name. Empty is allowed and means the default.
func Priority(priority string) error {
	_, err := task.ParsePriority(priority)
	return err
}

// DueDate validates an optional due date. Empty is allowed; anything else
// must be a real calendar date in YYYY-MM-DD form.
func DueDate(due string) error {
	due = strings.TrimSpace(due)
	if due == "" {
		return nil
	}
	if _, err := time.Parse(task.DueDateLayout, due); err != nil {
		return fmt.Errorf("due date must be YYYY-MM-DD, got %q", due)
	}
	return nil
}

// Input is raw task input as typed by the user.
type Input struct {
	Title    string
	Priority string
	DueDate  string
}

// Validate checks every field and returns criterio.FieldErrors describing all problems.
func (in Input) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("title", in.Title, Title),
		criterio.Run("priority", in.Priority, Priority),
		criterio.Run("due_date", in.DueDate, DueDate),
	)
}

// Parsed validates the input and converts it to typed task fields.
func (in Input) Parsed() (title string, priority task.Priority, due task.DueDate, err error) {
	if err := in.Validate(); err != nil {
		return "", "", "", err
	}

	priority, _ = task.ParsePriority(in.Priority)
	return strings.TrimSpace(in.Title), priority, task.DueDate(strings.TrimSpace(in.DueDate)), nil
}

// PatchFor validates the input and returns a patch holding only the fields
// that differ from current. A blank due date clears it.
func (in Input) PatchFor(current task.Task) (task.Patch, error) {
	title, priority, due, err := in.Parsed()
	if err != nil {
		return task.Patch{}, err
	}

	var p task.Patch
	if title != current.Title {
		p.Title = task.Set(title)
	}
	if priority != current.Priority {
		p.Priority = task.Set(priority)
	}
	switch {
	case due == current.DueDate:
	case due.IsSet():
		p.DueDate = task.Set(due)
	default:
		p.DueDate = task.Clear[task.DueDate]()
	}
	return p, nil
}
