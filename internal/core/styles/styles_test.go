package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdue/internal/core/task"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"gruvbox", "tokyo-night"}, ThemeNames())
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)

	assert.Equal(t, lipgloss.Color("#83a598"), ColorPrimary)
	assert.Equal(t, "#83a598", *GlamourStyle().Heading.Color)
}

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#F44336"), PriorityColor(task.PriorityHigh))
	assert.Equal(t, lipgloss.Color("#FFC107"), PriorityColor(task.PriorityMedium))
	assert.Equal(t, lipgloss.Color("#4CAF50"), PriorityColor(task.PriorityLow))
	assert.Equal(t, ColorMuted, PriorityColor(task.Priority("Urgent")))
}
