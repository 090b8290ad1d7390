package components

import (
	"strings"

	"fflagedit/internal/tui/styles"
)

// StatusBar shows the controller's last status line, colored by outcome.
type StatusBar struct {
	text   string
	styles styles.Styles
}

func NewStatusBar(s styles.Styles) *StatusBar {
	return &StatusBar{styles: s}
}

func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(s.text, "ERROR"):
		return s.styles.Error.Render(s.text)
	case strings.HasPrefix(s.text, "SUCCESS"):
		return s.styles.Success.Render(s.text)
	default:
		return s.styles.Status.Render(s.text)
	}
}
