// Package selection holds the set of selected paths and the tag summary
// derived from it.
//
// A toggle is planned before it is applied: the whole subtree is enumerated
// first, and only when every directory in it could be read are the flips
// committed. A failed toggle therefore leaves the set untouched.
package selection

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rime/internal/errors"
	"rime/internal/lister"
	"rime/internal/log"
	"rime/internal/tags"
)

// ChildLister enumerates a directory in listing order, without a parent entry.
type ChildLister interface {
	Children(dir string) ([]lister.Entry, error)
}

// Entry is the record kept for one selected path.
type Entry struct {
	Kind lister.Kind
	// Tag is nil for directories and for files whose tags could not be read.
	Tag tags.Container
	// Err is the parse failure for an unreadable file.
	Err error
}

// Set maps canonical paths to their selection entries.
type Set struct {
	lister  ChildLister
	parser  tags.Parser
	entries map[string]*Entry
	summary Summary
}

// New creates an empty selection.
func New(l ChildLister, p tags.Parser) *Set {
	return &Set{
		lister:  l,
		parser:  p,
		entries: make(map[string]*Entry),
		summary: NewSummary(),
	}
}

type step struct {
	path string
	kind lister.Kind
}

// Toggle flips path and, for a directory, every path beneath it in listing
// order. Paths not yet selected are canonicalized first. If any directory in
// the subtree cannot be read the error is returned and nothing changes.
func (s *Set) Toggle(path string) error {
	return s.apply(path, false)
}

// Select adds path and everything beneath it, leaving paths that are already
// selected as they are. It fails the same way Toggle does.
func (s *Set) Select(path string) error {
	return s.apply(path, true)
}

func (s *Set) apply(path string, keep bool) error {
	root := path
	if _, selected := s.entries[path]; !selected {
		canonical, err := lister.Canonical(path)
		if err != nil {
			return err
		}
		root = canonical
	}

	plan, err := s.plan(root)
	if err != nil {
		log.LogWithError(err).Warn("toggle aborted")
		return err
	}

	for _, st := range plan {
		if _, selected := s.entries[st.path]; selected {
			if !keep {
				delete(s.entries, st.path)
			}
			continue
		}
		s.entries[st.path] = s.newEntry(st)
	}
	s.summary = Aggregate(s.entries)

	msg := "toggled"
	if keep {
		msg = "selected"
	}
	log.LogWithFields(log.F("path", root), log.F("paths", len(plan)), log.F("selected", len(s.entries))).Debug(msg)
	return nil
}

// plan walks root depth-first with an explicit stack and returns every path
// to flip, each exactly once. Directories reached twice through symlinks are
// walked once.
func (s *Set) plan(root string) ([]step, error) {
	info, err := os.Stat(root)
	if err != nil {
		if e, selected := s.entries[root]; selected && errors.Is(err, fs.ErrNotExist) {
			return s.vanished(root, e.Kind), nil
		}
		return nil, errors.FromOS("stat", root, err)
	}
	if !info.IsDir() {
		return []step{{path: root, kind: lister.File}}, nil
	}

	var plan []step
	seen := make(map[string]bool)
	stack := []step{{path: root, kind: lister.Dir}}
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[st.path] {
			continue
		}
		seen[st.path] = true
		plan = append(plan, st)

		if st.kind != lister.Dir {
			continue
		}
		children, err := s.lister.Children(st.path)
		if err != nil {
			return nil, errors.Wrapf(err, "toggle %s", root)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, step{path: children[i].Path, kind: children[i].Kind})
		}
	}
	return plan, nil
}

// vanished plans the deselection of a selected path that no longer exists,
// along with any selected paths recorded beneath it.
func (s *Set) vanished(root string, kind lister.Kind) []step {
	plan := []step{{path: root, kind: kind}}
	if kind != lister.Dir {
		return plan
	}
	prefix := root + string(filepath.Separator)
	for _, p := range s.Paths() {
		if strings.HasPrefix(p, prefix) {
			plan = append(plan, step{path: p, kind: s.entries[p].Kind})
		}
	}
	return plan
}

func (s *Set) newEntry(st step) *Entry {
	if st.kind == lister.Dir {
		return &Entry{Kind: lister.Dir}
	}
	c, err := s.parser.Parse(st.path)
	if err != nil {
		log.LogWithError(err).Debug("selected file has no readable tag")
		return &Entry{Kind: lister.File, Err: err}
	}
	return &Entry{Kind: lister.File, Tag: c}
}

// IsSelected reports whether path is in the set.
func (s *Set) IsSelected(path string) bool {
	_, ok := s.entries[path]
	return ok
}

// Entry returns the record for path.
func (s *Set) Entry(path string) (*Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Paths returns the selected paths in ascending order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of selected paths, directories included.
func (s *Set) Len() int {
	return len(s.entries)
}

// CountSelectedFiles counts selected paths that currently resolve to a
// regular file. Directory markers and vanished files are not counted.
func (s *Set) CountSelectedFiles() int {
	n := 0
	for p := range s.entries {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			n++
		}
	}
	return n
}

// Unreadable counts selected files whose tags failed to parse.
func (s *Set) Unreadable() int {
	n := 0
	for _, e := range s.entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Clear deselects everything.
func (s *Set) Clear() {
	s.entries = make(map[string]*Entry)
	s.summary = Aggregate(s.entries)
}

// Summary returns the summary computed after the last mutation.
func (s *Set) Summary() Summary {
	return s.summary.clone()
}
