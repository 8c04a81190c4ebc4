package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskdue/internal/core/validate"
)

func TestNewTaskForm_DefaultsPriority(t *testing.T) {
	in := &validate.Input{}

	form := NewTaskForm("New task", in)

	assert.NotNil(t, form)
	assert.Equal(t, "Medium", in.Priority)
}

func TestNewTaskForm_KeepsExistingValues(t *testing.T) {
	in := &validate.Input{Title: "Revise", Priority: "High", DueDate: "2024-01-01"}

	NewTaskForm("Edit task", in)

	assert.Equal(t, "High", in.Priority)
	assert.Equal(t, "Revise", in.Title)
}

func TestPriorityOptions(t *testing.T) {
	opts := priorityOptions()

	assert.Len(t, opts, 3)
	assert.Equal(t, "High", opts[0].Value)
	assert.Equal(t, "Low", opts[2].Value)
}
