//go:build !nogui

package gui

import (
	"sync"
	"time"

	"fflagedit/internal/config"
	"fflagedit/internal/editor"
	"fflagedit/internal/fsys"
	"fflagedit/internal/jsonfmt"
	"fflagedit/internal/log"
	"fflagedit/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appID = "io.github.fflagedit"

// App is the GUI application. It is the editor's View and Picker.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config

	// mu serialises controller calls from the UI and the watcher goroutine
	mu         sync.Mutex
	controller *editor.Controller
	watcher    *watch.Watcher

	selectButton *widget.Button
	saveButton   *widget.Button
	lockButton   *widget.Button
	showAllCheck *widget.Check
	pathLabel    *widget.Label
	statusLabel  *widget.Label
	contentEntry *widget.Entry
}

// NewApp creates the GUI on a fresh fyne application
func NewApp(cfg *config.Config, fs fsys.FS) *App {
	return New(app.NewWithID(appID), cfg, fs)
}

// New builds the main window on fyneApp. Tests pass test.NewApp().
func New(fyneApp fyne.App, cfg *config.Config, fs fsys.FS) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
	}
	a.applyTheme()

	a.mainWindow = a.fyneApp.NewWindow("Settings File Editor")
	a.mainWindow.Resize(fyne.NewSize(cfg.GUI.Width, cfg.GUI.Height))
	a.setupMainWindow()

	a.controller = editor.New(fs, a,
		editor.WithFormatter(jsonfmt.New(cfg.Editor.Indent)),
		editor.WithDefaultDir(cfg.Editor.DefaultDir),
		editor.WithFilters(cfg.Picker.Filters),
		editor.WithOnLoad(a.follow),
	)
	return a
}

// Controller returns the file state controller behind the window
func (a *App) Controller() *editor.Controller {
	return a.controller
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

func (a *App) applyTheme() {
	switch a.cfg.Theme.Name {
	case "dark":
		a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	case "light":
		a.fyneApp.Settings().SetTheme(theme.LightTheme())
	default:
		a.fyneApp.Settings().SetTheme(theme.DefaultTheme())
	}
}

// setupMainWindow lays out the toolbar, the path label, the editor and the
// status line.
func (a *App) setupMainWindow() {
	a.selectButton = widget.NewButtonWithIcon("Select File...", theme.FolderOpenIcon(), a.browse)
	a.saveButton = widget.NewButtonWithIcon("Save Changes", theme.DocumentSaveIcon(), a.save)
	a.lockButton = widget.NewButton(editor.LockLabelUnlocked, a.toggleLock)
	a.lockButton.Disable()

	a.showAllCheck = widget.NewCheck("Show all files", func(value bool) {
		a.cfg.Picker.ShowAll = value
	})
	a.showAllCheck.SetChecked(a.cfg.Picker.ShowAll)

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		a.showSettings()
	})

	a.pathLabel = widget.NewLabel(editor.PathLabelNotSelected)
	a.pathLabel.Truncation = fyne.TextTruncateEllipsis
	a.statusLabel = widget.NewLabel("")

	a.contentEntry = widget.NewMultiLineEntry()
	a.contentEntry.TextStyle = fyne.TextStyle{Monospace: true}
	a.contentEntry.Wrapping = fyne.TextWrapOff
	a.contentEntry.SetPlaceHolder("Select a settings file to edit its flags.")

	toolbar := container.NewHBox(
		a.selectButton,
		a.saveButton,
		a.lockButton,
		a.showAllCheck,
		settingsButton,
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, a.pathLabel, widget.NewSeparator()),
		a.statusLabel,
		nil,
		nil,
		a.contentEntry,
	)
	a.mainWindow.SetContent(content)

	a.mainWindow.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		a.save()
	})
}

func (a *App) browse() {
	a.mu.Lock()
	dir := a.controller.DefaultDirectory()
	filters := a.controller.Filters()
	a.mu.Unlock()

	a.Pick(dir, filters, func(path string, ok bool) {
		if !ok {
			return
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		_ = a.controller.Select(path)
	})
}

func (a *App) save() {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.controller.Save()
}

func (a *App) toggleLock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.controller.ToggleLock()
}

// Open selects path as if it had been picked
func (a *App) Open(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller.Select(path)
}

// Run shows the window and blocks until it is closed
func (a *App) Run() {
	a.startWatcher()
	defer a.stopWatcher()

	a.mainWindow.ShowAndRun()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.WithError(err).Error(title)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}

// Buffer implements editor.View
func (a *App) Buffer() string {
	return a.contentEntry.Text
}

// SetBuffer implements editor.View
func (a *App) SetBuffer(text string) {
	a.contentEntry.SetText(text)
}

// SetPathLabel implements editor.View
func (a *App) SetPathLabel(text string) {
	a.pathLabel.SetText(text)
}

// SetStatus implements editor.View
func (a *App) SetStatus(text string) {
	a.statusLabel.SetText(text)
}

// SetLockEnabled implements editor.View
func (a *App) SetLockEnabled(enabled bool) {
	if enabled {
		a.lockButton.Enable()
		return
	}
	a.lockButton.Disable()
}

// SetLockLabel implements editor.View
func (a *App) SetLockLabel(text string) {
	a.lockButton.SetText(text)
}

func (a *App) startWatcher() {
	if !a.cfg.Watch.Enabled || a.watcher != nil {
		return
	}
	w, err := watch.New(time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond)
	if err != nil {
		log.WithError(err).Warn("file watching disabled")
		return
	}
	if err := w.Start(); err != nil {
		log.WithError(err).Warn("file watching disabled")
		w.Stop()
		return
	}
	a.watcher = w

	if path := a.controller.CurrentPath(); path != "" && a.controller.State() == editor.FileLoaded {
		a.follow(path)
	}

	go func() {
		for ev := range w.Events() {
			a.mu.Lock()
			watch.Dispatch(ev, a.controller)
			a.mu.Unlock()
		}
	}()
}

func (a *App) stopWatcher() {
	if a.watcher == nil {
		return
	}
	a.watcher.Stop()
	a.watcher = nil
}

// follow points the watcher at a freshly loaded file
func (a *App) follow(path string) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Watch(path); err != nil {
		log.With(log.F("file", path)).WithError(err).Warn("cannot follow file changes")
	}
}
