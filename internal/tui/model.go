// Package tui is the terminal front end: it maps key presses to navigator
// commands and renders the navigator's view.
package tui

import (
	"time"

	"rime/internal/log"
	"rime/internal/navigator"
	"rime/internal/tui/components"
	"rime/internal/tui/messages"
	"rime/internal/tui/styles"
	"rime/internal/tui/views"
	"rime/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval paces the idle heartbeat.
const tickInterval = time.Second

type Model struct {
	nav     *navigator.Navigator
	watcher *watch.Watcher

	keys      KeyMap
	help      help.Model
	styles    styles.Styles
	statusBar *components.StatusBar

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithStyles replaces the default styles.
func WithStyles(st styles.Styles) Option {
	return func(m *Model) {
		m.styles = st
	}
}

// WithWatcher refreshes the listing when the watcher reports a change. The
// watcher must already be started.
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

func New(nav *navigator.Navigator, opts ...Option) *Model {
	m := &Model{
		nav:    nav,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: styles.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.statusBar = components.NewStatusBar(m.styles)
	m.follow()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForChange(), m.waitForError())
}

// View implements tea.Model
func (m *Model) View() string {
	if m.nav.Quitting() {
		return ""
	}
	return views.RenderMainView(m, m.styles)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.TickMsg:
		return m, tick()

	case messages.DirChangedMsg:
		if msg.Dir == m.nav.Dir() {
			m.dispatch(navigator.Refresh)
		}
		return m, m.waitForChange()

	case messages.ErrorMsg:
		m.statusBar.SetError(msg.Err)
		return m, m.waitForError()
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd, ok := m.keys.Command(msg)
	if !ok {
		return m, nil
	}
	m.dispatch(cmd)
	if m.nav.Quitting() {
		return m, tea.Quit
	}
	return m, nil
}

// dispatch runs cmd, reporting failures in the status line.
func (m *Model) dispatch(cmd navigator.Command) {
	dir := m.nav.Dir()
	if err := m.nav.Dispatch(cmd); err != nil {
		m.statusBar.SetError(err)
		return
	}
	m.statusBar.Clear()
	if m.nav.Dir() != dir {
		m.follow()
	}
}

// follow points the watcher at the working directory.
func (m *Model) follow() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Follow(m.nav.Dir()); err != nil {
		log.LogWithError(err).Warn("cannot watch directory")
	}
}

func (m *Model) watching() bool {
	return m.watcher != nil && m.watcher.IsRunning()
}

func (m *Model) waitForChange() tea.Cmd {
	if !m.watching() {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return messages.DirChangedMsg{Dir: c.Dir, Path: c.Path}
	}
}

func (m *Model) waitForError() tea.Cmd {
	if !m.watching() {
		return nil
	}
	errs := m.watcher.Errors()
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return messages.ErrorMsg{Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return messages.TickMsg(t)
	})
}

// Snapshot returns the navigator view being rendered.
func (m *Model) Snapshot() navigator.View {
	return m.nav.View()
}

// StatusView renders the status line.
func (m *Model) StatusView() string {
	return m.statusBar.View()
}

// ShowHelp reports whether the full help is shown.
func (m *Model) ShowHelp() bool {
	return m.help.ShowAll
}

// HelpView renders the key help.
func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

// Size returns the terminal size last reported.
func (m *Model) Size() (int, int) {
	return m.width, m.height
}
