package tui

import (
	"fmt"
	"time"

	"fflagedit/internal/config"
	"fflagedit/internal/fsys"
	"fflagedit/internal/log"
	"fflagedit/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// StartTUI runs the terminal editor until the user quits. A non-empty path
// is loaded before the first frame.
func StartTUI(cfg *config.Config, fs fsys.FS, path string, opts ...tea.ProgramOption) error {
	m := New(cfg, fs)

	if cfg.Watch.Enabled {
		w, err := watch.New(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else if err := w.Start(); err != nil {
			log.WithError(err).Warn("file watching disabled")
			w.Stop()
		} else {
			defer w.Stop()
			m.SetWatcher(w)
		}
	}

	if path != "" {
		// Load failures are already on the status line
		_ = m.Controller().Select(path)
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
