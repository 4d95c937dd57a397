package views

import (
	"fmt"
	"strings"

	"rime/internal/tui/common"
	"rime/internal/tui/components"
	"rime/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Titles of the two columns.
const (
	NavigatorTitle = "File Navigator"
	tagsTitle      = "Current Tags (%d Files Selected)"
)

// chrome is the number of lines around the listing: column border, title,
// directory line, status line and help line.
const chrome = 7

// Below minWidth x minHeight nothing is drawn. Up to stackWidth columns the
// summary goes under the listing instead of beside it.
const (
	minWidth   = 20
	minHeight  = 9
	stackWidth = 120
)

// TagsTitle returns the heading of the summary column.
func TagsTitle(files int) string {
	return fmt.Sprintf(tagsTitle, files)
}

// RenderMainView renders the navigator column beside the tag summary, with
// the status and help lines underneath.
func RenderMainView(m common.ModelReader, st styles.Styles) string {
	v := m.Snapshot()
	width, height := m.Size()
	sized := width > 0 && height > 0
	if sized && (width < minWidth || height < minHeight) {
		return ""
	}
	stacked := sized && width <= stackWidth

	table := components.NewTagTable(st)
	table.SetRows(v.Summary)
	header := []string{st.Title.Render(TagsTitle(v.Files))}
	if v.Unreadable > 0 {
		header = append(header, st.Sentinel.Render(fmt.Sprintf("%d without readable tags", v.Unreadable)))
	} else {
		header = append(header, "")
	}
	right := lipgloss.JoinVertical(lipgloss.Left, append(header, table.View())...)

	list := components.NewFileList(st)
	list.SetRows(v.Rows, v.Cursor)
	listHeight := height - chrome
	if stacked {
		listHeight -= lipgloss.Height(right) + 2
	}
	if height > 0 {
		list.SetHeight(max(listHeight, 1))
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(NavigatorTitle),
		st.Dir.Render(v.Dir),
		list.View(),
	)

	leftCol, rightCol := st.Column, st.Column
	var columns string
	switch {
	case stacked:
		leftCol = leftCol.Width(width - 6)
		rightCol = rightCol.Width(width - 6)
		columns = lipgloss.JoinVertical(lipgloss.Left, leftCol.Render(left), rightCol.Render(right))
	case sized:
		// Split the width between the columns, leaving room for the borders
		half := width/2 - 4
		leftCol = leftCol.Width(half)
		rightCol = rightCol.Width(width - half - 8)
		fallthrough
	default:
		columns = lipgloss.JoinHorizontal(lipgloss.Top, leftCol.Render(left), rightCol.Render(right))
	}

	var sb strings.Builder
	sb.WriteString(columns)
	sb.WriteString("\n" + m.StatusView())
	sb.WriteString("\n" + st.Help.Render(m.HelpView()))

	return st.App.Render(sb.String())
}
