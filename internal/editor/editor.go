// Package editor holds the file state controller: it owns the path of the
// settings file currently open and mediates every read, write and attribute
// change against it, turning outcomes into status text on a View.
package editor

import (
	"bytes"
	"path/filepath"

	"fflagedit/internal/errors"
	"fflagedit/internal/fsys"
	"fflagedit/internal/jsonfmt"
	"fflagedit/internal/log"
)

// Text shown on the View.
const (
	PathLabelPrefix      = "Current File: "
	PathLabelNotSelected = PathLabelPrefix + "Not Selected"

	LockLabelLocked   = "Toggle Read-Only (LOCKED)"
	LockLabelUnlocked = "Toggle Read-Only (UNLOCKED)"

	StatusLoaded        = "Status: File loaded successfully."
	StatusNotFound      = "ERROR: File not found. Select a new file."
	StatusLoadFailed    = "ERROR loading file: "
	StatusSelectFirst   = "ERROR: Please select a file first."
	StatusSaved         = "SUCCESS: Changes saved to file."
	StatusSaveFailed    = "ERROR saving file: "
	StatusNoFile        = "ERROR: No file is selected."
	StatusNowWritable   = "Status: File is now Writable (UNLOCKED)."
	StatusNowReadOnly   = "Status: File is now Read-Only (LOCKED)."
	StatusToggleFailed  = "ERROR toggling attribute: "
	StatusChangedOnDisk = "Status: File changed on disk."
)

// Client install layout probed for the picker's start directory.
var clientVersionsDir = []string{"Roblox", "Versions"}

// View is the surface the controller drives: an editable buffer, the
// current-file label, the status label and the lock toggle.
type View interface {
	Buffer() string
	SetBuffer(text string)
	SetPathLabel(text string)
	SetStatus(text string)
	SetLockEnabled(enabled bool)
	SetLockLabel(text string)
}

// Picker presents a file selection surface starting in dir and offering
// the given name filters. done receives ok=false when the user cancels.
type Picker interface {
	Pick(dir string, filters []string, done func(path string, ok bool))
}

// Formatter turns text into its display form. ok is false when the text is
// not JSON and was returned unchanged.
type Formatter interface {
	TryPrettyPrint(text string) (string, bool)
}

// State is the controller's position in its load lifecycle.
type State int

const (
	NoFileSelected State = iota
	FileLoaded
	FileLoadError
)

func (s State) String() string {
	switch s {
	case FileLoaded:
		return "loaded"
	case FileLoadError:
		return "load error"
	default:
		return "no file selected"
	}
}

// Controller is the file state controller. It is not safe for concurrent
// use; UI shells call it from their event loop.
type Controller struct {
	fs         fsys.FS
	view       View
	formatter  Formatter
	defaultDir string
	filters    []string
	onLoad     func(path string)

	currentPath string
	state       State

	// Content the controller last read or wrote. Change notifications
	// matching it are the controller's own doing.
	synced     []byte
	haveSynced bool
}

// Option configures a Controller
type Option func(*Controller)

// WithFormatter replaces the default two-space JSON formatter
func WithFormatter(f Formatter) Option {
	return func(c *Controller) {
		c.formatter = f
	}
}

// WithDefaultDir makes DefaultDirectory prefer dir when it exists
func WithDefaultDir(dir string) Option {
	return func(c *Controller) {
		c.defaultDir = dir
	}
}

// WithFilters sets the name filters handed to a Picker
func WithFilters(filters []string) Option {
	return func(c *Controller) {
		c.filters = append([]string(nil), filters...)
	}
}

// WithOnLoad registers fn to run after every successful load
func WithOnLoad(fn func(path string)) Option {
	return func(c *Controller) {
		c.onLoad = fn
	}
}

// New creates a controller with no file selected.
func New(fs fsys.FS, view View, opts ...Option) *Controller {
	c := &Controller{
		fs:        fs,
		view:      view,
		formatter: jsonfmt.New(""),
		filters:   []string{"IxpSettings.json", "ClientAppSettings.json"},
	}
	c.Apply(opts...)
	return c
}

// Apply changes options on a live controller. The current file and state
// are kept.
func (c *Controller) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// CurrentPath returns the selected file, or "" when none was chosen.
func (c *Controller) CurrentPath() string {
	return c.currentPath
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Filters returns the picker name filters.
func (c *Controller) Filters() []string {
	return append([]string(nil), c.filters...)
}

// DefaultDirectory returns where a picker should start: the configured
// directory if it exists, then the client's per-user versions directory,
// then the desktop. It never fails.
func (c *Controller) DefaultDirectory() string {
	if c.defaultDir != "" && c.fs.Exists(c.defaultDir) {
		return c.defaultDir
	}

	if dataDir, err := c.fs.UserDataDir(); err == nil {
		candidate := filepath.Join(append([]string{dataDir}, clientVersionsDir...)...)
		if c.fs.Exists(candidate) {
			return candidate
		}
		log.Debugf("client versions directory %s not found, using desktop", candidate)
	}

	desktop, err := c.fs.DesktopDir()
	if err != nil {
		log.WithError(err).Warn("no desktop directory, using working directory")
		return "."
	}
	return desktop
}

// Browse asks p for a file and selects it. Cancelling does nothing.
func (c *Controller) Browse(p Picker) {
	p.Pick(c.DefaultDirectory(), c.Filters(), func(path string, ok bool) {
		if !ok || path == "" {
			log.Debug("file selection cancelled")
			return
		}
		c.Select(path)
	})
}

// Select makes path the current file and loads it. The path is kept even
// when the load fails.
func (c *Controller) Select(path string) error {
	c.currentPath = path
	return c.Load(path)
}

// Attach makes path the current file without reading it or touching its
// attributes, so the lock toggle can be driven on its own. The buffer is
// left alone.
func (c *Controller) Attach(path string) error {
	c.currentPath = path
	c.state = NoFileSelected
	c.forgetSynced()

	if err := c.RefreshLockLabel(path); err != nil {
		c.view.SetLockEnabled(false)
		if errors.IsFileNotFound(err) {
			c.view.SetStatus(StatusNotFound)
			c.view.SetPathLabel(PathLabelNotSelected)
			return err
		}
		c.view.SetStatus(StatusLoadFailed + err.Error())
		return err
	}

	c.view.SetPathLabel(PathLabelPrefix + path)
	c.view.SetLockEnabled(true)
	return nil
}

// Reload loads the current file again.
func (c *Controller) Reload() error {
	if c.currentPath == "" {
		c.view.SetStatus(StatusSelectFirst)
		return errors.ErrNoFileSelected
	}
	return c.Load(c.currentPath)
}

// Load clears ReadOnly on path, reads it and shows its contents,
// pretty-printed when they parse as JSON.
//
// A missing file resets the path label and disables the lock toggle. Other
// failures only change the status; the buffer and labels keep their
// previous contents.
func (c *Controller) Load(path string) error {
	logger := log.With(log.F("path", path))

	text, err := c.read(path)
	if err != nil {
		c.state = FileLoadError
		c.forgetSynced()
		if errors.IsFileNotFound(err) {
			logger.WithError(err).Warn("settings file not found")
			c.view.SetStatus(StatusNotFound)
			c.view.SetPathLabel(PathLabelNotSelected)
			c.view.SetLockEnabled(false)
			return err
		}
		logger.WithError(err).Error("loading settings file failed")
		c.view.SetStatus(StatusLoadFailed + err.Error())
		return err
	}

	c.remember([]byte(text))

	display, isJSON := c.formatter.TryPrettyPrint(text)
	if !isJSON {
		logger.Debug("content is not valid JSON, showing raw text")
	}

	c.view.SetBuffer(display)
	c.view.SetPathLabel(PathLabelPrefix + path)
	c.view.SetStatus(StatusLoaded)
	c.view.SetLockEnabled(true)
	if err := c.RefreshLockLabel(path); err != nil {
		c.state = FileLoadError
		c.view.SetStatus(StatusLoadFailed + err.Error())
		return err
	}

	c.state = FileLoaded
	logger.Info("settings file loaded")
	if c.onLoad != nil {
		c.onLoad(path)
	}
	return nil
}

func (c *Controller) read(path string) (string, error) {
	if err := c.setReadOnly(path, false); err != nil {
		return "", err
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save clears ReadOnly on the current file and overwrites it with the
// buffer exactly as shown. Nothing is validated or reformatted, and a
// failure part way leaves whatever the completed steps did.
func (c *Controller) Save() error {
	if c.currentPath == "" {
		c.view.SetStatus(StatusSelectFirst)
		return errors.ErrNoFileSelected
	}
	logger := log.With(log.F("path", c.currentPath))

	if err := c.setReadOnly(c.currentPath, false); err != nil {
		logger.WithError(err).Error("unlocking before save failed")
		c.view.SetStatus(StatusSaveFailed + err.Error())
		return err
	}
	data := []byte(c.view.Buffer())
	if err := c.fs.WriteFile(c.currentPath, data); err != nil {
		logger.WithError(err).Error("saving settings file failed")
		c.view.SetStatus(StatusSaveFailed + err.Error())
		c.forgetSynced()
		return err
	}
	c.remember(data)

	c.view.SetStatus(StatusSaved)
	logger.Info("settings file saved")
	return nil
}

// ToggleLock flips ReadOnly on the current file.
func (c *Controller) ToggleLock() error {
	if c.currentPath == "" {
		c.view.SetStatus(StatusNoFile)
		return errors.ErrNoFileSelected
	}

	attrs, err := c.fs.Attributes(c.currentPath)
	if err != nil {
		return c.toggleFailed(err)
	}
	return c.applyLock(!attrs.Has(fsys.ReadOnly))
}

// SetLock sets ReadOnly on the current file to locked.
func (c *Controller) SetLock(locked bool) error {
	if c.currentPath == "" {
		c.view.SetStatus(StatusNoFile)
		return errors.ErrNoFileSelected
	}
	return c.applyLock(locked)
}

func (c *Controller) applyLock(locked bool) error {
	if err := c.setReadOnly(c.currentPath, locked); err != nil {
		return c.toggleFailed(err)
	}
	if err := c.RefreshLockLabel(c.currentPath); err != nil {
		return c.toggleFailed(err)
	}

	if locked {
		c.view.SetStatus(StatusNowReadOnly)
	} else {
		c.view.SetStatus(StatusNowWritable)
	}
	log.With(log.F("path", c.currentPath), log.F("locked", locked)).Info("read-only attribute changed")
	return nil
}

func (c *Controller) toggleFailed(err error) error {
	log.With(log.F("path", c.currentPath)).WithError(err).Error("toggling read-only failed")
	c.view.SetStatus(StatusToggleFailed + err.Error())
	return err
}

// RefreshLockLabel probes path and shows whether it is read-only. The label
// follows the file on disk, not what the controller last did to it.
func (c *Controller) RefreshLockLabel(path string) error {
	attrs, err := c.fs.Attributes(path)
	if err != nil {
		return err
	}
	c.view.SetLockLabel(LockLabel(attrs))
	return nil
}

// LockLabel is the toggle label for attrs.
func LockLabel(attrs fsys.Attributes) string {
	if attrs.Has(fsys.ReadOnly) {
		return LockLabelLocked
	}
	return LockLabelUnlocked
}

// Locked reports whether the current file is read-only right now.
func (c *Controller) Locked() (bool, error) {
	if c.currentPath == "" {
		return false, errors.ErrNoFileSelected
	}
	attrs, err := c.fs.Attributes(c.currentPath)
	if err != nil {
		return false, err
	}
	return attrs.Has(fsys.ReadOnly), nil
}

// NotifyChanged reports an external modification of the current file. The
// buffer is left alone; the status asks the user to reload. Notifications
// for content the controller itself last read or wrote are ignored, so a
// Save does not report its own write.
func (c *Controller) NotifyChanged(path string) {
	if path != c.currentPath || c.state != FileLoaded {
		return
	}
	if c.matchesSynced() {
		log.With(log.F("path", path)).Debug("ignoring change notification for our own write")
		return
	}
	c.view.SetStatus(StatusChangedOnDisk)
}

func (c *Controller) remember(data []byte) {
	c.synced = append(c.synced[:0], data...)
	c.haveSynced = true
}

func (c *Controller) forgetSynced() {
	c.synced = c.synced[:0]
	c.haveSynced = false
}

// matchesSynced reports whether the current file still holds what the
// controller last read or wrote. A file that cannot be read does not match.
func (c *Controller) matchesSynced() bool {
	if !c.haveSynced {
		return false
	}
	data, err := c.fs.ReadFile(c.currentPath)
	if err != nil {
		return false
	}
	return bytes.Equal(data, c.synced)
}

func (c *Controller) setReadOnly(path string, readOnly bool) error {
	attrs, err := c.fs.Attributes(path)
	if err != nil {
		return err
	}
	if readOnly {
		attrs = attrs.With(fsys.ReadOnly)
	} else {
		attrs = attrs.Without(fsys.ReadOnly)
	}
	return c.fs.SetAttributes(path, attrs)
}
