//go:build nogui

package gui

import (
	"fflagedit/internal/errors"
)

// Create fails in builds without the GUI
func (f *Factory) Create() (Interface, error) {
	return nil, errors.New("GUI not available in this build, use the tui command")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
