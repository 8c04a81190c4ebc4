package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/task"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid title", "Solve 2019 paper", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", "2024-01-05", false},
		{"leap day", "2024-02-29", false},
		{"not a leap year", "2023-02-29", true},
		{"wrong layout", "05/01/2024", true},
		{"words", "tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DueDate(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "DueDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestInput_Validate_CollectsAllFields(t *testing.T) {
	err := Input{Title: " ", Priority: "critical", DueDate: "soon"}.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestInput_Parsed(t *testing.T) {
	title, priority, due, err := Input{Title: "  Revise OS  ", Priority: "high", DueDate: "2024-01-01"}.Parsed()
	require.NoError(t, err)

	assert.Equal(t, "Revise OS", title)
	assert.Equal(t, task.PriorityHigh, priority)
	assert.Equal(t, task.DueDate("2024-01-01"), due)

	_, priority, due, err = Input{Title: "x"}.Parsed()
	require.NoError(t, err)
	assert.Equal(t, task.PriorityMedium, priority)
	assert.False(t, due.IsSet())
}

func TestInput_PatchFor(t *testing.T) {
	current := task.Task{ID: 2, Title: "Revise", Priority: task.PriorityLow, DueDate: "2024-01-01"}

	t.Run("unchanged", func(t *testing.T) {
		p, err := Input{Title: "Revise", Priority: "Low", DueDate: "2024-01-01"}.PatchFor(current)
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("changed fields only", func(t *testing.T) {
		p, err := Input{Title: "Revise", Priority: "High", DueDate: "2024-02-01"}.PatchFor(current)
		require.NoError(t, err)
		assert.True(t, p.Title.IsKeep())
		assert.Equal(t, task.PriorityHigh, p.Priority.Value())
		assert.Equal(t, task.DueDate("2024-02-01"), p.DueDate.Value())
	})

	t.Run("blank due date clears", func(t *testing.T) {
		p, err := Input{Title: "Revise", Priority: "Low"}.PatchFor(current)
		require.NoError(t, err)
		assert.True(t, p.DueDate.IsClear())
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := Input{Title: "", Priority: "Low"}.PatchFor(current)
		assert.Error(t, err)
	})
}
