package gui

import (
	"fflagedit/internal/config"
	"fflagedit/internal/fsys"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	Open(path string) error
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config *config.Config
	fs     fsys.FS
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, fs fsys.FS) *Factory {
	return &Factory{
		config: cfg,
		fs:     fs,
	}
}

// StartGUI opens the editor window, loads path when it is not empty, and
// blocks until the window closes.
func StartGUI(cfg *config.Config, fs fsys.FS, path string) error {
	ui, err := NewFactory(cfg, fs).Create()
	if err != nil {
		return err
	}
	if path != "" {
		// Load failures are already on the status line
		_ = ui.Open(path)
	}
	ui.Run()
	return nil
}
