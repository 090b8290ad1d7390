//go:build !nogui

package gui

import (
	"fflagedit/internal/config"
	"fflagedit/internal/editor"
	"fflagedit/internal/jsonfmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// settingsForm holds the widgets of the settings dialog
type settingsForm struct {
	indentSelect    *widget.Select
	defaultDirEntry *widget.Entry
	watchCheck      *widget.Check
	themeSelect     *widget.Select
}

func (f *settingsForm) load(cfg *config.Config) {
	if name, ok := indentName(cfg.Editor.Indent); ok {
		f.indentSelect.SetSelected(name)
	}
	f.defaultDirEntry.SetText(cfg.Editor.DefaultDir)
	f.watchCheck.SetChecked(cfg.Watch.Enabled)
	f.themeSelect.SetSelected(cfg.Theme.Name)
}

// createSettingsTab builds the settings form bound to a.cfg
func (a *App) createSettingsTab() (fyne.CanvasObject, *settingsForm) {
	form := &settingsForm{}

	// --- Editor Settings ---
	form.indentSelect = widget.NewSelect(indentOrder, func(value string) {
		a.cfg.Editor.Indent = indentChoices[value]
	})

	form.defaultDirEntry = widget.NewEntry()
	form.defaultDirEntry.SetPlaceHolder("Client versions directory")
	form.defaultDirEntry.OnChanged = func(text string) {
		a.cfg.Editor.DefaultDir = text
	}
	browseDirButton := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			form.defaultDirEntry.SetText(uri.Path())
		}, a.mainWindow)
	})

	editorCard := widget.NewCard("Editor", "", container.NewVBox(
		container.NewHBox(widget.NewLabel("Indent:"), form.indentSelect),
		widget.NewLabel("Start Directory:"),
		container.NewBorder(nil, nil, nil, browseDirButton, form.defaultDirEntry),
	))

	// --- Watch and Appearance ---
	form.watchCheck = widget.NewCheck("Notice changes made by other programs", func(value bool) {
		a.cfg.Watch.Enabled = value
	})
	form.themeSelect = widget.NewSelect(config.ListThemes(), func(value string) {
		a.cfg.ApplyTheme(value)
	})

	behaviourCard := widget.NewCard("Behaviour", "", container.NewVBox(
		form.watchCheck,
		container.NewHBox(widget.NewLabel("Theme:"), form.themeSelect),
	))

	// --- Import/Export Settings ---
	importButton := widget.NewButton("Import Configuration...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()

			newCfg, err := parseImportedConfig(reader)
			if err != nil {
				a.ShowError("Import Failed", err)
				return
			}

			path := a.cfg.Path()
			*a.cfg = *newCfg
			a.cfg.SetPath(path)
			form.load(a.cfg)
			a.applySettings()
			a.saveConfig()
			a.ShowInfo("Configuration imported successfully")
		}, a.mainWindow)
	})

	exportButton := widget.NewButton("Export Configuration...", func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()

			if err := exportConfig(a.cfg, writer); err != nil {
				a.ShowError("Export Failed", err)
				return
			}
			a.ShowInfo("Configuration exported successfully")
		}, a.mainWindow)
	})

	importExportCard := widget.NewCard("Import/Export", "", container.NewHBox(
		importButton,
		exportButton,
	))

	// --- Save Settings Button ---
	saveSettingsButton := widget.NewButton("Save Settings", func() {
		if err := a.cfg.Validate(); err != nil {
			a.ShowError("Invalid settings", err)
			return
		}
		a.applySettings()
		a.saveConfig()
	})

	form.load(a.cfg)

	return container.NewVBox(
		editorCard,
		behaviourCard,
		importExportCard,
		saveSettingsButton,
	), form
}

// showSettings opens the settings dialog
func (a *App) showSettings() {
	content, _ := a.createSettingsTab()
	d := dialog.NewCustom("Settings", "Close", content, a.mainWindow)
	d.Resize(fyne.NewSize(480, 420))
	d.Show()
}

// applySettings pushes a.cfg into the live controller and starts or stops
// the watcher to match. Callers must not hold a.mu.
func (a *App) applySettings() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.Apply(
		editor.WithFormatter(jsonfmt.New(a.cfg.Editor.Indent)),
		editor.WithDefaultDir(a.cfg.Editor.DefaultDir),
		editor.WithFilters(a.cfg.Picker.Filters),
	)
	a.showAllCheck.SetChecked(a.cfg.Picker.ShowAll)
	a.applyTheme()

	if a.cfg.Watch.Enabled {
		a.startWatcher()
	} else {
		a.stopWatcher()
	}
}

// saveConfig saves the current configuration
func (a *App) saveConfig() {
	if err := a.cfg.Save(); err != nil {
		a.ShowError("Failed to save configuration", err)
		return
	}
	a.statusLabel.SetText("Status: Settings saved.")
}
