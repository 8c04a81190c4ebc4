// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdue/internal/core/task"
)

// Palette defines a minimal semantic theme palette. Values are hex colors.
type Palette struct {
	Primary    string
	Secondary  string
	Foreground string
	Muted      string
	Background string
	Surface    string
	Success    string
	Warning    string
	Error      string
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    "#7aa2f7",
		Secondary:  "#7dcfff",
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Background: "#1a1b26",
		Surface:    "#3b4261",
		Success:    "#9ece6a",
		Warning:    "#e0af68",
		Error:      "#f7768e",
	},
	"gruvbox": {
		Primary:    "#83a598",
		Secondary:  "#8ec07c",
		Foreground: "#ebdbb2",
		Muted:      "#665c54",
		Background: "#282828",
		Surface:    "#3c3836",
		Success:    "#b8bb26",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
	},
}

// Priority colors are fixed across themes so a task reads the same everywhere.
var priorityColors = map[task.Priority]lipgloss.Color{
	task.PriorityHigh:   lipgloss.Color("#F44336"),
	task.PriorityMedium: lipgloss.Color("#FFC107"),
	task.PriorityLow:    lipgloss.Color("#4CAF50"),
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	TextStyle    lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// TUI shared styles.
	TitleStyle       lipgloss.Style
	SelectedStyle    lipgloss.Style
	CompletedStyle   lipgloss.Style
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	ToastInfoStyle   lipgloss.Style
	ToastWarnStyle   lipgloss.Style
	ToastErrorStyle  lipgloss.Style
	StatusBarStyle   lipgloss.Style
	TableHeaderStyle lipgloss.Style
	TableCellStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = lipgloss.Color(p.Primary)
	ColorSecondary = lipgloss.Color(p.Secondary)
	ColorForeground = lipgloss.Color(p.Foreground)
	ColorMuted = lipgloss.Color(p.Muted)
	ColorBackground = lipgloss.Color(p.Background)
	ColorSurface = lipgloss.Color(p.Surface)
	ColorSuccess = lipgloss.Color(p.Success)
	ColorWarning = lipgloss.Color(p.Warning)
	ColorError = lipgloss.Color(p.Error)

	HeaderStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	SelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		Foreground(ColorPrimary).
		Bold(true).
		PaddingLeft(1)
	CompletedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary)
	ToastWarnStyle = toast.BorderForeground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().Padding(0, 1)
}

// PriorityColor returns the color used for p. Unknown priorities are muted.
func PriorityColor(p task.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return ColorMuted
}

// PriorityStyle returns a foreground style for p.
func PriorityStyle(p task.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(p)).Bold(true)
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := CurrentPalette.Foreground
	primary := CurrentPalette.Primary
	secondary := CurrentPalette.Secondary
	muted := CurrentPalette.Muted
	surface := CurrentPalette.Surface

	cfg.Document.Color = &fg
	cfg.Paragraph.Color = &fg

	cfg.Heading.Color = &primary
	cfg.H1.Color = &fg
	cfg.H1.BackgroundColor = &surface
	cfg.H2.Color = &primary
	cfg.H3.Color = &primary

	cfg.BlockQuote.Color = &muted
	cfg.HorizontalRule.Color = &muted
	cfg.Item.Color = &fg

	cfg.Code.Color = &secondary
	cfg.Table.Color = &fg

	return cfg
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
