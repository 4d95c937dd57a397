package styles

import (
	"rime/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles defines the core UI styles.
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Dir       lipgloss.Style
	Column    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Directory lipgloss.Style
	File      lipgloss.Style
	FieldName lipgloss.Style
	Value     lipgloss.Style
	Sentinel  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// Default returns the styles of the default theme.
func Default() Styles {
	return FromTheme(config.New().Theme)
}

// FromTheme builds styles from configured theme colors.
func FromTheme(t config.Theme) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Primary)),
		Dir: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Italic(true),
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Reverse(true).
			Foreground(lipgloss.Color(t.Primary)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true),
		File: lipgloss.NewStyle(),
		FieldName: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Emphasis)),
		Value: lipgloss.NewStyle(),
		Sentinel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
	}
}
