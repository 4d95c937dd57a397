// Package lister turns a directory into the ordered listing the browser shows:
// an optional ".." parent entry, then subdirectories, then recognized audio
// files, each group sorted by canonical path.
package lister

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rime/internal/errors"
	"rime/internal/log"

	"github.com/gobwas/glob"
)

// DefaultPatterns are the file patterns recognized when none are configured.
var DefaultPatterns = []string{"*.mp3"}

// Kind classifies a listing entry.
type Kind int

const (
	File Kind = iota
	Dir
	// Parent is the synthetic ".." row.
	Parent
)

func (k Kind) String() string {
	switch k {
	case Dir:
		return "dir"
	case Parent:
		return "parent"
	default:
		return "file"
	}
}

// Entry is one row of a listing.
type Entry struct {
	Path string // canonical path
	Name string // display name
	Kind Kind
}

// IsDir reports whether the entry can be entered.
func (e Entry) IsDir() bool {
	return e.Kind == Dir || e.Kind == Parent
}

// Lister enumerates directories. It holds no working directory of its own.
type Lister struct {
	patterns []glob.Glob
	hidden   bool
}

// Option configures a Lister.
type Option func(*Lister) error

// WithPatterns replaces the recognized file patterns. Patterns use gobwas/glob
// syntax and are matched case-insensitively against the base name.
func WithPatterns(patterns []string) Option {
	return func(l *Lister) error {
		compiled, err := CompilePatterns(patterns)
		if err != nil {
			return err
		}
		l.patterns = compiled
		return nil
	}
}

// WithHidden controls whether dot-prefixed entries are listed.
func WithHidden(show bool) Option {
	return func(l *Lister) error {
		l.hidden = show
		return nil
	}
}

// CompilePatterns compiles file patterns, lower-casing them first.
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, errors.NewConfigError("invalid file pattern", p, errors.InvalidConfig, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// New creates a Lister recognizing DefaultPatterns and showing hidden entries.
func New(opts ...Option) (*Lister, error) {
	l := &Lister{hidden: true}
	if err := WithPatterns(DefaultPatterns)(l); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Matches reports whether a file name is recognized.
func (l *Lister) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range l.patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// Canonical returns the absolute, symlink-resolved form of path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.FromOS("resolve path", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.FromOS("resolve path", abs, err)
	}
	return resolved, nil
}

// List returns the full listing for dir, including the parent entry unless
// dir is a filesystem root.
func (l *Lister) List(dir string) ([]Entry, error) {
	canonical, err := Canonical(dir)
	if err != nil {
		return nil, err
	}
	children, err := l.Children(canonical)
	if err != nil {
		return nil, err
	}

	parent := filepath.Dir(canonical)
	if parent == canonical {
		return children, nil
	}
	entries := make([]Entry, 0, len(children)+1)
	entries = append(entries, Entry{Path: parent, Name: "..", Kind: Parent})
	return append(entries, children...), nil
}

// Children lists the subdirectories and recognized files of dir, without a
// parent entry. dir must already be canonical. Entries whose type cannot be
// determined are skipped.
func (l *Lister) Children(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FromOS("read directory", dir, err)
	}

	var dirs, files []Entry
	for _, d := range dirents {
		name := d.Name()
		if !l.hidden && strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil {
				log.LogWithFields(log.F("path", full), log.F("error", err)).Debug("skipping unresolvable entry")
				continue
			}
			isDir = info.IsDir()
			if !isDir && !info.Mode().IsRegular() {
				continue
			}
		} else if !isDir && !d.Type().IsRegular() {
			continue
		}

		canonical, err := filepath.EvalSymlinks(full)
		if err != nil {
			log.LogWithFields(log.F("path", full), log.F("error", err)).Debug("skipping unresolvable entry")
			continue
		}

		if isDir {
			dirs = append(dirs, Entry{Path: canonical, Name: name, Kind: Dir})
		} else if l.Matches(name) {
			files = append(files, Entry{Path: canonical, Name: name, Kind: File})
		}
	}

	sortByPath(dirs)
	sortByPath(files)
	return append(dirs, files...), nil
}

func sortByPath(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}
