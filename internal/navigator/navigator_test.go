package navigator

import (
	"os"
	"path/filepath"
	"testing"

	"rime/internal/errors"
	"rime/internal/lister"
	"rime/internal/selection"
	"rime/internal/tags"
	"rime/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingLister refuses to list one directory.
type blockingLister struct {
	*lister.Lister
	block string
}

func (b blockingLister) List(dir string) ([]lister.Entry, error) {
	if dir == b.block {
		return nil, errors.FromOS("read directory", dir, os.ErrPermission)
	}
	return b.Lister.List(dir)
}

func setup(t *testing.T, entries map[string]string) (string, *lister.Lister) {
	t.Helper()
	dir, err := lister.Canonical(t.TempDir())
	require.NoError(t, err)
	testutils.CreateTree(t, dir, entries)
	l, err := lister.New()
	require.NoError(t, err)
	return dir, l
}

func newNavigator(t *testing.T, dir string, l DirLister, cl selection.ChildLister) *Navigator {
	t.Helper()
	n, err := New(dir, l, selection.New(cl, tags.NewID3Parser()))
	require.NoError(t, err)
	return n
}

func names(v View) []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Name
	}
	return out
}

// moveTo puts the cursor on the row named name.
func moveTo(t *testing.T, n *Navigator, name string) {
	t.Helper()
	require.NoError(t, n.Dispatch(JumpTop))
	for i, r := range n.View().Rows {
		if r.Name == name {
			for j := 0; j < i; j++ {
				require.NoError(t, n.Dispatch(CursorDown))
			}
			return
		}
	}
	t.Fatalf("no row named %q", name)
}

func TestInitialListing(t *testing.T) {
	dir, l := setup(t, map[string]string{
		"b.mp3":    "",
		"a.mp3":    "",
		"zdir/":    "",
		"notes.md": "",
	})
	n := newNavigator(t, dir, l, l)

	v := n.View()
	assert.Equal(t, dir, v.Dir)
	assert.Equal(t, []string{"..", "zdir", "a.mp3", "b.mp3"}, names(v))
	assert.Equal(t, 0, v.Cursor)
	assert.Equal(t, lister.Parent, v.Rows[0].Kind)
	assert.Len(t, v.Summary, len(tags.Vocabulary))
	assert.Equal(t, 0, v.Files)
}

func TestNewFailsOnMissingDir(t *testing.T) {
	_, l := setup(t, nil)
	_, err := New(filepath.Join(t.TempDir(), "missing"), l, selection.New(l, tags.NewID3Parser()))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
}

func TestEnterThenExitRestoresListing(t *testing.T) {
	dir, l := setup(t, map[string]string{
		"album/one.mp3": "",
		"top.mp3":       "",
	})
	n := newNavigator(t, dir, l, l)
	before := names(n.View())

	moveTo(t, n, "top.mp3")
	require.NoError(t, n.Dispatch(ToggleSelect))

	moveTo(t, n, "album")
	require.NoError(t, n.Dispatch(EnterDirOrToggle))
	v := n.View()
	assert.Equal(t, filepath.Join(dir, "album"), v.Dir)
	assert.Equal(t, []string{"..", "one.mp3"}, names(v))
	assert.Equal(t, 0, v.Cursor)

	require.NoError(t, n.Dispatch(ExitDir))
	v = n.View()
	assert.Equal(t, dir, v.Dir)
	assert.Equal(t, before, names(v))
	assert.True(t, n.Selection().IsSelected(filepath.Join(dir, "top.mp3")))
	assert.Equal(t, 1, v.Files)
}

func TestEnterParentRowActsAsExit(t *testing.T) {
	dir, l := setup(t, map[string]string{"album/one.mp3": ""})
	n := newNavigator(t, filepath.Join(dir, "album"), l, l)

	require.NoError(t, n.Dispatch(JumpTop))
	require.NoError(t, n.Dispatch(EnterDirOrToggle))
	assert.Equal(t, dir, n.Dir())
	assert.Equal(t, 0, n.Selection().Len())
}

func TestFailedEnterLeavesStateUnchanged(t *testing.T) {
	dir, l := setup(t, map[string]string{
		"locked/one.mp3": "",
		"a.mp3":          "",
	})
	bl := blockingLister{Lister: l, block: filepath.Join(dir, "locked")}
	n := newNavigator(t, dir, bl, l)

	moveTo(t, n, "locked")
	before := n.View()

	err := n.Dispatch(EnterDirOrToggle)
	require.Error(t, err)
	assert.True(t, errors.IsFileAccessDenied(err))
	assert.Equal(t, before, n.View())
	assert.False(t, n.Quitting())
}

func TestEnterOnFileToggles(t *testing.T) {
	dir, l := setup(t, nil)
	testutils.WriteMP3(t, filepath.Join(dir, "song.mp3"), testutils.TextFrame("TIT2", "Song1"))
	n := newNavigator(t, dir, l, l)

	moveTo(t, n, "song.mp3")
	require.NoError(t, n.Dispatch(EnterDirOrToggle))
	v := n.View()
	assert.Equal(t, dir, v.Dir)
	assert.True(t, v.Rows[v.Cursor].Selected)
	assert.Equal(t, 1, v.Files)
	for _, r := range v.Summary {
		if r.ID == tags.Title {
			assert.Equal(t, "Song1", r.Display)
		}
	}

	require.NoError(t, n.Dispatch(EnterDirOrToggle))
	assert.False(t, n.View().Rows[v.Cursor].Selected)
}

func TestToggleIgnoresParentRow(t *testing.T) {
	dir, l := setup(t, map[string]string{"a.mp3": ""})
	n := newNavigator(t, dir, l, l)

	require.NoError(t, n.Dispatch(JumpTop))
	require.NoError(t, n.Dispatch(ToggleSelect))
	assert.Equal(t, 0, n.Selection().Len())
	assert.False(t, n.View().Rows[0].Selected)
}

func TestToggleDirectoryRow(t *testing.T) {
	dir, l := setup(t, map[string]string{
		"album/one.mp3":     "",
		"album/sub/two.mp3": "",
	})
	n := newNavigator(t, dir, l, l)

	moveTo(t, n, "album")
	require.NoError(t, n.Dispatch(ToggleSelect))
	v := n.View()
	assert.True(t, v.Rows[v.Cursor].Selected)
	assert.Equal(t, 2, v.Files)
	assert.Equal(t, 2, v.Unreadable)

	require.NoError(t, n.Dispatch(ClearSelection))
	v = n.View()
	assert.False(t, v.Rows[v.Cursor].Selected)
	assert.Equal(t, 0, v.Files)
}

func TestEmptyListingIsInert(t *testing.T) {
	dir, l := setup(t, nil)
	n := newNavigator(t, dir, emptyLister{}, l)

	for _, cmd := range []Command{CursorDown, CursorUp, JumpTop, JumpBottom, ToggleSelect, EnterDirOrToggle} {
		require.NoError(t, n.Dispatch(cmd), cmd.String())
	}
	v := n.View()
	assert.Equal(t, -1, v.Cursor)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 0, n.Selection().Len())
}

type emptyLister struct{}

func (emptyLister) List(string) ([]lister.Entry, error) { return nil, nil }

func TestCursorBounds(t *testing.T) {
	dir, l := setup(t, map[string]string{"a.mp3": "", "b.mp3": "", "c.mp3": ""})
	n := newNavigator(t, dir, l, l)

	require.NoError(t, n.Dispatch(CursorUp))
	assert.Equal(t, 0, n.View().Cursor)

	for i := 0; i < 10; i++ {
		require.NoError(t, n.Dispatch(CursorDown))
	}
	assert.Equal(t, 3, n.View().Cursor)

	require.NoError(t, n.Dispatch(JumpTop))
	assert.Equal(t, 0, n.View().Cursor)
	require.NoError(t, n.Dispatch(JumpBottom))
	assert.Equal(t, 3, n.View().Cursor)
}

func TestExitAtRootIsNoOp(t *testing.T) {
	_, l := setup(t, nil)
	root := string(filepath.Separator)
	n, err := New(root, emptyLister{}, selection.New(l, tags.NewID3Parser()))
	require.NoError(t, err)

	require.NoError(t, n.Dispatch(ExitDir))
	assert.Equal(t, root, n.Dir())
}

func TestRefreshKeepsCursorOnPath(t *testing.T) {
	dir, l := setup(t, map[string]string{"b.mp3": "", "c.mp3": ""})
	n := newNavigator(t, dir, l, l)

	moveTo(t, n, "c.mp3")
	require.NoError(t, n.Dispatch(ToggleSelect))

	testutils.CreateTree(t, dir, map[string]string{"a.mp3": ""})
	require.NoError(t, n.Dispatch(Refresh))
	v := n.View()
	assert.Equal(t, []string{"..", "a.mp3", "b.mp3", "c.mp3"}, names(v))
	assert.Equal(t, "c.mp3", v.Rows[v.Cursor].Name)
	assert.True(t, v.Rows[v.Cursor].Selected)

	require.NoError(t, os.Remove(filepath.Join(dir, "c.mp3")))
	require.NoError(t, n.Dispatch(Refresh))
	v = n.View()
	assert.Equal(t, 2, v.Cursor)
	assert.Equal(t, 1, n.Selection().Len())
}

func TestQuit(t *testing.T) {
	dir, l := setup(t, nil)
	n := newNavigator(t, dir, l, l)

	require.NoError(t, n.Dispatch(Quit))
	assert.True(t, n.Quitting())

	// Nothing else is accepted once done
	require.NoError(t, n.Dispatch(ExitDir))
	assert.Equal(t, dir, n.Dir())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "enter_dir_or_toggle", EnterDirOrToggle.String())
	assert.Equal(t, "command(99)", Command(99).String())
	assert.Equal(t, "browsing", Browsing.String())
}
