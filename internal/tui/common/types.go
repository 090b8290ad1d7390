package common

import "fflagedit/internal/tui/styles"

type Mode int

const (
	// Editing sends keys to the buffer
	Editing Mode = iota
	// Prompt sends keys to the path prompt
	Prompt
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() Mode
	PathLabel() string
	LockLabel() string
	LockEnabled() bool
	EditorView() string
	PromptView() string
	StatusView() string
	HelpView() string
	Styles() styles.Styles
}
