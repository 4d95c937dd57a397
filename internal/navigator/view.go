package navigator

import (
	"rime/internal/lister"
	"rime/internal/selection"
)

// Row is one listing line as the view shows it.
type Row struct {
	Name     string
	Path     string
	Kind     lister.Kind
	Selected bool
}

// View is a read-only snapshot of everything the screen renders.
type View struct {
	Dir        string
	Rows       []Row
	Cursor     int // -1 when the listing is empty
	Summary    []selection.Row
	Files      int
	Unreadable int
}

// View builds a snapshot of the current state.
func (n *Navigator) View() View {
	entries := n.listing.Items()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Name:     e.Name,
			Path:     e.Path,
			Kind:     e.Kind,
			Selected: e.Kind != lister.Parent && n.set.IsSelected(e.Path),
		}
	}

	cursor := -1
	if i, ok := n.listing.Cursor(); ok {
		cursor = i
	}

	return View{
		Dir:        n.cwd,
		Rows:       rows,
		Cursor:     cursor,
		Summary:    n.set.Summary().Rows(),
		Files:      n.set.CountSelectedFiles(),
		Unreadable: n.set.Unreadable(),
	}
}
