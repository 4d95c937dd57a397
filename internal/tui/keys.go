package tui

import (
	"rime/internal/navigator"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the keybindings of the browser.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up         key.Binding
	Down       key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
	Enter      key.Binding // Enter a directory, toggle a file
	GoBack     key.Binding
	Refresh    key.Binding

	// Selection
	Select         key.Binding
	ClearSelection key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "go to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("→/l/enter", "open dir / toggle file"),
		),
		GoBack: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("←/h", "parent dir"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle selection"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.GoBack, k.Select, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.GotoTop, k.GotoBottom},
		{k.Enter, k.GoBack, k.Refresh},
		{k.Select, k.ClearSelection},
		{k.Help, k.Quit},
	}
}

// Command maps a key press to a navigator command.
func (k KeyMap) Command(msg tea.KeyMsg) (navigator.Command, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return navigator.Quit, true
	case key.Matches(msg, k.GoBack):
		return navigator.ExitDir, true
	case key.Matches(msg, k.Enter):
		return navigator.EnterDirOrToggle, true
	case key.Matches(msg, k.Down):
		return navigator.CursorDown, true
	case key.Matches(msg, k.Up):
		return navigator.CursorUp, true
	case key.Matches(msg, k.GotoTop):
		return navigator.JumpTop, true
	case key.Matches(msg, k.GotoBottom):
		return navigator.JumpBottom, true
	case key.Matches(msg, k.Select):
		return navigator.ToggleSelect, true
	case key.Matches(msg, k.ClearSelection):
		return navigator.ClearSelection, true
	case key.Matches(msg, k.Refresh):
		return navigator.Refresh, true
	}
	return 0, false
}
