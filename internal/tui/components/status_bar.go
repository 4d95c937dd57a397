package components

import (
	"rime/internal/tui/styles"
)

type StatusBar struct {
	text    string
	isError bool
	styles  styles.Styles
}

func NewStatusBar(st styles.Styles) *StatusBar {
	return &StatusBar{styles: st}
}

// SetError shows err until the next successful command.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.Clear()
		return
	}
	s.text = err.Error()
	s.isError = true
}

func (s *StatusBar) Clear() {
	s.text = ""
	s.isError = false
}

func (s *StatusBar) Text() (string, bool) {
	return s.text, s.isError
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	if s.isError {
		return s.styles.Error.Render("error: " + s.text)
	}
	return s.styles.Status.Render(s.text)
}
