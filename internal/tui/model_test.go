package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rime/internal/errors"
	"rime/internal/lister"
	"rime/internal/navigator"
	"rime/internal/selection"
	"rime/internal/tags"
	"rime/internal/tui/messages"
	"rime/internal/watch"
	"rime/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, entries map[string]string, opts ...Option) (*Model, string) {
	t.Helper()
	dir, err := lister.Canonical(t.TempDir())
	require.NoError(t, err)
	testutils.CreateTree(t, dir, entries)

	l, err := lister.New()
	require.NoError(t, err)
	nav, err := navigator.New(dir, l, selection.New(l, tags.NewID3Parser()))
	require.NoError(t, err)
	return New(nav, opts...), dir
}

func press(t *testing.T, m *Model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = m.Update(msg)
		require.Same(t, m, model)
	}
	return cmd
}

func TestModelInitialization(t *testing.T) {
	m, dir := newModel(t, map[string]string{"a.mp3": ""})
	assert.Equal(t, dir, m.nav.Dir())
	assert.NotNil(t, m.Init())

	text, isErr := m.statusBar.Text()
	assert.Empty(t, text)
	assert.False(t, isErr)
	assert.False(t, m.ShowHelp())
}

func TestKeysDriveNavigator(t *testing.T) {
	m, dir := newModel(t, map[string]string{
		"album/one.mp3": "",
		"b.mp3":         "",
	})

	press(t, m, runes("j"))
	assert.Equal(t, 1, m.Snapshot().Cursor)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filepath.Join(dir, "album"), m.nav.Dir())

	press(t, m, runes("h"))
	assert.Equal(t, dir, m.nav.Dir())

	press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	v := m.Snapshot()
	assert.Equal(t, len(v.Rows)-1, v.Cursor)

	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	v = m.Snapshot()
	assert.True(t, v.Rows[v.Cursor].Selected)
	assert.Equal(t, 1, v.Files)

	press(t, m, runes("c"))
	assert.Equal(t, 0, m.Snapshot().Files)

	press(t, m, runes("g"))
	assert.Equal(t, 0, m.Snapshot().Cursor)
}

func TestToggleKeysUpdateSummary(t *testing.T) {
	m, dir := newModel(t, nil)
	testutils.WriteMP3(t, filepath.Join(dir, "a.mp3"), testutils.TextFrame("TIT2", "Song1"))
	testutils.WriteMP3(t, filepath.Join(dir, "b.mp3"), testutils.TextFrame("TIT2", "Song1"))
	testutils.WriteMP3(t, filepath.Join(dir, "c.mp3"), testutils.TextFrame("TIT2", "Song2"))
	press(t, m, runes("r"))

	// rows: .., a.mp3, b.mp3, c.mp3
	press(t, m, runes("j"), runes(" "), runes("j"), runes(" "))
	out := testutils.StripANSI(m.View())
	assert.Contains(t, out, "Current Tags (2 Files Selected)")
	assert.Contains(t, out, "Song1")

	press(t, m, runes("j"), runes(" "))
	out = testutils.StripANSI(m.View())
	assert.Contains(t, out, "Current Tags (3 Files Selected)")
	assert.Contains(t, out, selection.MultipleSentinel)
}

func TestFailedCommandShowsError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping test when running as root")
	}
	m, dir := newModel(t, map[string]string{"locked/a.mp3": ""})
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked"), 0000))
	defer os.Chmod(filepath.Join(dir, "locked"), 0755)

	press(t, m, runes("j"), runes("l"))
	assert.Equal(t, dir, m.nav.Dir())
	text, isErr := m.statusBar.Text()
	assert.True(t, isErr)
	assert.Contains(t, text, "locked")
	assert.Contains(t, testutils.StripANSI(m.View()), "error:")

	// The next successful command clears it
	press(t, m, runes("k"))
	_, isErr = m.statusBar.Text()
	assert.False(t, isErr)
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}} {
		m, _ := newModel(t, nil)
		cmd := press(t, m, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.nav.Quitting())
		assert.Empty(t, m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newModel(t, nil)
	short := testutils.StripANSI(m.View())
	assert.NotContains(t, short, "clear selection")

	press(t, m, runes("?"))
	assert.True(t, m.ShowHelp())
	assert.Contains(t, testutils.StripANSI(m.View()), "clear selection")
}

func TestTickChangesNothing(t *testing.T) {
	m, _ := newModel(t, map[string]string{"a.mp3": ""})
	before := m.Snapshot()
	cmd := press(t, m, messages.TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, before, m.Snapshot())
}

func TestWindowSize(t *testing.T) {
	m, _ := newModel(t, nil)
	press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	w, h := m.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

func TestDirChangedRefreshesListing(t *testing.T) {
	m, dir := newModel(t, map[string]string{"a.mp3": ""})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp3"), nil, 0644))

	press(t, m, messages.DirChangedMsg{Dir: "/elsewhere"})
	assert.Len(t, m.Snapshot().Rows, 2)

	press(t, m, messages.DirChangedMsg{Dir: dir})
	assert.Len(t, m.Snapshot().Rows, 3)
}

func TestWatcherErrorsReachStatusLine(t *testing.T) {
	m, _ := newModel(t, nil)
	cmd := press(t, m, messages.ErrorMsg{Err: errors.New("watch: event queue overflow")})
	assert.Nil(t, cmd)

	text, isErr := m.statusBar.Text()
	assert.True(t, isErr)
	assert.Equal(t, "watch: event queue overflow", text)
	assert.Contains(t, testutils.StripANSI(m.View()), "error: watch: event queue overflow")
}

func TestStoppedWatcherIsNotAwaited(t *testing.T) {
	w, err := watch.New()
	require.NoError(t, err)
	require.NoError(t, w.Start())

	m, _ := newModel(t, nil, WithWatcher(w))
	assert.NotNil(t, m.waitForChange())
	assert.NotNil(t, m.waitForError())

	w.Stop()
	assert.Nil(t, m.waitForChange())
	assert.Nil(t, m.waitForError())
}

func TestWatcherFollowsWorkingDirectory(t *testing.T) {
	w, err := watch.New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	m, dir := newModel(t, map[string]string{"album/one.mp3": ""}, WithWatcher(w))
	assert.Equal(t, dir, w.Dir())

	press(t, m, runes("j"), runes("l"))
	assert.Equal(t, filepath.Join(dir, "album"), w.Dir())

	cmd := m.waitForChange()
	require.NotNil(t, cmd)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "album", "two.mp3"), nil, 0644))

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		changed, ok := msg.(messages.DirChangedMsg)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "album"), changed.Dir)
		press(t, m, changed)
		assert.Len(t, m.Snapshot().Rows, 3)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for directory change")
	}
}
