package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestConfirmModal(t *testing.T) {
	tests := []struct {
		name          string
		key           tea.KeyMsg
		wantConfirmed bool
		wantCancelled bool
	}{
		{name: "y confirms", key: runeKey('y'), wantConfirmed: true},
		{name: "enter confirms", key: tea.KeyMsg{Type: tea.KeyEnter}, wantConfirmed: true},
		{name: "n cancels", key: runeKey('n'), wantCancelled: true},
		{name: "esc cancels", key: tea.KeyMsg{Type: tea.KeyEsc}, wantCancelled: true},
		{name: "other keys ignored", key: runeKey('x')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModal("Delete task 1?")

			m, _ = m.Update(tt.key)

			assert.Equal(t, tt.wantConfirmed, m.Confirmed())
			assert.Equal(t, tt.wantCancelled, m.Cancelled())
		})
	}
}

func TestConfirmModal_View(t *testing.T) {
	assert.Contains(t, NewConfirmModal("Delete task 1?").View(), "Delete task 1?")
}
