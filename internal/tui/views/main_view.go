package views

import (
	"strings"

	"fflagedit/internal/editor"
	"fflagedit/internal/tui/common"
)

const title = "Settings File Editor"

func RenderMainView(m common.ModelReader) string {
	s := m.Styles()
	var sb strings.Builder

	sb.WriteString(s.Title.Render(title))
	sb.WriteString("  ")
	sb.WriteString(renderLock(m))
	sb.WriteString("\n")
	sb.WriteString(s.Path.Render(m.PathLabel()))
	sb.WriteString("\n")

	sb.WriteString(s.Editor.Render(m.EditorView()))
	sb.WriteString("\n")

	if m.Mode() == common.Prompt {
		sb.WriteString(m.PromptView())
		sb.WriteString("\n")
	}

	sb.WriteString(m.StatusView())
	sb.WriteString("\n")
	sb.WriteString(m.HelpView())

	return s.App.Render(sb.String())
}

func renderLock(m common.ModelReader) string {
	s := m.Styles()
	label := "[" + m.LockLabel() + "]"
	switch {
	case !m.LockEnabled():
		return s.Disabled.Render(label)
	case m.LockLabel() == editor.LockLabelLocked:
		return s.Locked.Render(label)
	default:
		return s.Unlocked.Render(label)
	}
}
