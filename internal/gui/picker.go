//go:build !nogui

package gui

import (
	"fflagedit/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/gobwas/glob"
)

// nameFilter matches file names against compiled globs.
type nameFilter struct {
	globs []glob.Glob
}

var _ storage.FileFilter = (*nameFilter)(nil)

func newNameFilter(patterns []string) (*nameFilter, error) {
	f := &nameFilter{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Matches implements storage.FileFilter
func (f *nameFilter) Matches(uri fyne.URI) bool {
	return f.match(uri.Name())
}

func (f *nameFilter) match(name string) bool {
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Pick implements editor.Picker with a fyne file dialog. The "Show all
// files" switch drops the name filter.
func (a *App) Pick(dir string, filters []string, done func(path string, ok bool)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.ShowError("Selecting file failed", err)
			done("", false)
			return
		}
		if reader == nil {
			done("", false)
			return
		}
		path := reader.URI().Path()
		if cerr := reader.Close(); cerr != nil {
			log.With(log.F("file", path)).WithError(cerr).Debug("closing picked file")
		}
		done(path, true)
	}, a.mainWindow)

	if !a.cfg.Picker.ShowAll {
		filter, err := newNameFilter(filters)
		if err != nil {
			log.WithError(err).Warn("invalid picker filter, showing all files")
		} else {
			fd.SetFilter(filter)
		}
	}

	location, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		log.With(log.F("directory", dir)).WithError(err).Debug("cannot start picker there")
	} else {
		fd.SetLocation(location)
	}

	fd.Resize(fyne.NewSize(a.cfg.GUI.Width*0.9, a.cfg.GUI.Height*0.9))
	fd.Show()
}
