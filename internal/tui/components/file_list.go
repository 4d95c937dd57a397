package components

import (
	"strings"

	"rime/internal/lister"
	"rime/internal/navigator"
	"rime/internal/tui/styles"
)

// FileList renders the listing column, scrolled so the cursor row is visible.
type FileList struct {
	rows   []navigator.Row
	cursor int
	height int
	styles styles.Styles
}

func NewFileList(st styles.Styles) *FileList {
	return &FileList{cursor: -1, styles: st}
}

func (fl *FileList) SetRows(rows []navigator.Row, cursor int) {
	fl.rows = rows
	fl.cursor = cursor
}

// SetHeight limits the number of rows drawn; zero draws them all.
func (fl *FileList) SetHeight(h int) {
	fl.height = h
}

// Window returns the half-open range of rows that will be drawn.
func (fl *FileList) Window() (int, int) {
	n := len(fl.rows)
	if fl.height <= 0 || n <= fl.height {
		return 0, n
	}
	start := 0
	if fl.cursor >= fl.height {
		start = fl.cursor - fl.height + 1
	}
	return start, start + fl.height
}

func (fl *FileList) View() string {
	if len(fl.rows) == 0 {
		return fl.styles.Status.Render("(no entries)")
	}

	start, end := fl.Window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, fl.renderRow(fl.rows[i], i == fl.cursor))
	}
	return strings.Join(lines, "\n")
}

func (fl *FileList) renderRow(r navigator.Row, atCursor bool) string {
	marker := "[ ]"
	switch {
	case r.Kind == lister.Parent:
		marker = "   "
	case r.Selected:
		marker = "[x]"
	}

	name := r.Name
	style := fl.styles.File
	if r.Kind != lister.File {
		name += "/"
		style = fl.styles.Directory
	}
	if r.Selected {
		style = fl.styles.Selected
	}
	if atCursor {
		return fl.styles.Cursor.Render("> " + marker + " " + name)
	}
	return "  " + marker + " " + style.Render(name)
}
