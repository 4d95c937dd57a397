// Package navigator is the browser's controller. It owns the working
// directory, the cursor-addressed listing and the selection, and applies
// user commands to them through a small state machine.
package navigator

import (
	"fmt"
	"path/filepath"

	"rime/internal/errors"
	"rime/internal/lister"
	"rime/internal/log"
	"rime/internal/navlist"
	"rime/internal/selection"
)

// DirLister produces the full listing of a directory, parent entry included.
type DirLister interface {
	List(dir string) ([]lister.Entry, error)
}

// Command is a user intent.
type Command int

const (
	Quit Command = iota
	ExitDir
	EnterDirOrToggle
	CursorDown
	CursorUp
	JumpTop
	JumpBottom
	ToggleSelect
	ClearSelection
	Refresh
)

var commandNames = map[Command]string{
	Quit:             "quit",
	ExitDir:          "exit_dir",
	EnterDirOrToggle: "enter_dir_or_toggle",
	CursorDown:       "cursor_down",
	CursorUp:         "cursor_up",
	JumpTop:          "jump_top",
	JumpBottom:       "jump_bottom",
	ToggleSelect:     "toggle_select",
	ClearSelection:   "clear_selection",
	Refresh:          "refresh",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// State is the controller mode.
type State int

const (
	Browsing State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type transition func(n *Navigator) (State, error)

// transitions lists every command each state accepts. Commands missing from
// a state's row are ignored in that state.
var transitions = map[State]map[Command]transition{
	Browsing: {
		Quit:             (*Navigator).quit,
		ExitDir:          (*Navigator).exitDir,
		EnterDirOrToggle: (*Navigator).enterOrToggle,
		CursorDown:       cursor((*navlist.List[lister.Entry]).MoveDown),
		CursorUp:         cursor((*navlist.List[lister.Entry]).MoveUp),
		JumpTop:          cursor((*navlist.List[lister.Entry]).JumpTop),
		JumpBottom:       cursor((*navlist.List[lister.Entry]).JumpBottom),
		ToggleSelect:     (*Navigator).toggle,
		ClearSelection:   (*Navigator).clear,
		Refresh:          (*Navigator).refresh,
	},
	Done: {},
}

func cursor(move func(*navlist.List[lister.Entry])) transition {
	return func(n *Navigator) (State, error) {
		move(n.listing)
		return Browsing, nil
	}
}

// Navigator holds the browsing state.
type Navigator struct {
	state   State
	cwd     string
	lister  DirLister
	listing *navlist.List[lister.Entry]
	set     *selection.Set
}

// New starts browsing dir.
func New(dir string, l DirLister, set *selection.Set) (*Navigator, error) {
	cwd, err := lister.Canonical(dir)
	if err != nil {
		return nil, err
	}
	entries, err := l.List(cwd)
	if err != nil {
		return nil, err
	}
	return &Navigator{
		state:   Browsing,
		cwd:     cwd,
		lister:  l,
		listing: navlist.New(entries),
		set:     set,
	}, nil
}

// Dispatch applies cmd. On error nothing visible has changed.
func (n *Navigator) Dispatch(cmd Command) error {
	next, ok := transitions[n.state][cmd]
	if !ok {
		log.Debugf("ignoring %s while %s", cmd, n.state)
		return nil
	}
	state, err := next(n)
	if err != nil {
		log.LogWithError(err).Warnf("%s failed", cmd)
		return err
	}
	n.state = state
	return nil
}

// Quitting reports whether Quit has been dispatched.
func (n *Navigator) Quitting() bool {
	return n.state == Done
}

// Dir returns the working directory.
func (n *Navigator) Dir() string {
	return n.cwd
}

// Selection returns the selection the navigator mutates.
func (n *Navigator) Selection() *selection.Set {
	return n.set
}

func (n *Navigator) quit() (State, error) {
	return Done, nil
}

func (n *Navigator) exitDir() (State, error) {
	parent := filepath.Dir(n.cwd)
	if parent == n.cwd {
		return Browsing, nil
	}
	return Browsing, n.enter(parent)
}

func (n *Navigator) enterOrToggle() (State, error) {
	e, ok := n.listing.Current()
	if !ok {
		return Browsing, nil
	}
	switch e.Kind {
	case lister.Parent:
		return n.exitDir()
	case lister.Dir:
		return Browsing, n.enter(e.Path)
	default:
		return Browsing, n.set.Toggle(e.Path)
	}
}

// enter lists dir and, only if that succeeds, makes it the working directory.
func (n *Navigator) enter(dir string) error {
	entries, err := n.lister.List(dir)
	if err != nil {
		return errors.Wrapf(err, "enter %s", dir)
	}
	canonical, err := lister.Canonical(dir)
	if err != nil {
		return err
	}
	n.cwd = canonical
	n.listing.Replace(entries)
	log.LogWithFields(log.F("dir", n.cwd), log.F("entries", len(entries))).Debug("entered directory")
	return nil
}

func (n *Navigator) toggle() (State, error) {
	e, ok := n.listing.Current()
	if !ok || e.Kind == lister.Parent {
		return Browsing, nil
	}
	return Browsing, n.set.Toggle(e.Path)
}

func (n *Navigator) clear() (State, error) {
	n.set.Clear()
	return Browsing, nil
}

// refresh relists the working directory, keeping the cursor on the same path
// when it is still listed.
func (n *Navigator) refresh() (State, error) {
	entries, err := n.lister.List(n.cwd)
	if err != nil {
		return Browsing, errors.Wrapf(err, "refresh %s", n.cwd)
	}

	prev, hadCursor := n.listing.Cursor()
	current, _ := n.listing.Current()
	n.listing.Replace(entries)
	if !hadCursor {
		return Browsing, nil
	}
	for i, e := range entries {
		if e.Path == current.Path && e.Kind == current.Kind {
			n.listing.Select(i)
			return Browsing, nil
		}
	}
	if !n.listing.Select(prev) {
		n.listing.JumpBottom()
	}
	return Browsing, nil
}
