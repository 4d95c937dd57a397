package components

import (
	"fmt"
	"strings"

	"rime/internal/selection"
	"rime/internal/tui/styles"
)

// TagTable renders the summary column: one aligned "Name: value" line per
// vocabulary field.
type TagTable struct {
	rows   []selection.Row
	styles styles.Styles
}

func NewTagTable(st styles.Styles) *TagTable {
	return &TagTable{styles: st}
}

func (t *TagTable) SetRows(rows []selection.Row) {
	t.rows = rows
}

func (t *TagTable) View() string {
	width := 0
	for _, r := range t.rows {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	lines := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		name := t.styles.FieldName.Render(fmt.Sprintf("%-*s", width, r.Name))
		value := t.styles.Value.Render(firstLine(r.Display))
		if r.State != selection.Single {
			value = t.styles.Sentinel.Render(r.Display)
		}
		lines = append(lines, name+"  "+value)
	}
	return strings.Join(lines, "\n")
}

// firstLine keeps multi-line values such as lyrics to one row.
func firstLine(s string) string {
	line, rest, cut := strings.Cut(s, "\n")
	line = strings.TrimRight(line, "\r")
	if cut && strings.TrimSpace(rest) != "" {
		line += " ..."
	}
	return line
}
