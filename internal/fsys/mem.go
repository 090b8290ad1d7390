package fsys

import (
	"io/fs"
	"path/filepath"
	"sync"

	"fflagedit/internal/errors"
)

// Call records one operation made against a Mem.
type Call struct {
	Op   string
	Path string
}

type memFile struct {
	data  []byte
	attrs Attributes
}

// Mem is an in-memory FS. Writes to a ReadOnly file fail with
// FileAccessDenied, as they would on disk.
type Mem struct {
	mu       sync.Mutex
	files    map[string]*memFile
	dirs     map[string]bool
	failures map[string]error
	calls    []Call
	dataDir  string
	desktop  string
}

// NewMem creates an empty in-memory filesystem whose user data and desktop
// directories are dataDir and desktop.
func NewMem(dataDir, desktop string) *Mem {
	return &Mem{
		files:    make(map[string]*memFile),
		dirs:     make(map[string]bool),
		failures: make(map[string]error),
		dataDir:  dataDir,
		desktop:  desktop,
	}
}

// AddFile creates or replaces a file.
func (m *Mem) AddFile(path string, data string, attrs Attributes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &memFile{data: []byte(data), attrs: attrs}
	m.dirs[filepath.Dir(path)] = true
}

// AddDir makes path exist as a directory.
func (m *Mem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// Remove deletes a file.
func (m *Mem) Remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

// Content returns the stored bytes of path.
func (m *Mem) Content(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path]
	if !ok {
		return "", false
	}
	return string(f.data), true
}

// Fail makes the next and every later op on path return err until cleared
// with Fail(op, path, nil). op is one of read, write, stat, chmod.
func (m *Mem) Fail(op, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := op + ":" + path
	if err == nil {
		delete(m.failures, key)
		return
	}
	m.failures[key] = err
}

// Calls returns the operations performed so far.
func (m *Mem) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls forgets recorded operations.
func (m *Mem) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// enter records the call and returns the injected failure, if any.
// Callers hold m.mu.
func (m *Mem) enter(op, path string) error {
	m.calls = append(m.calls, Call{Op: op, Path: path})
	if err, ok := m.failures[op+":"+path]; ok {
		return errors.FromOS(op, path, err)
	}
	return nil
}

func (m *Mem) lookup(op, path string) (*memFile, error) {
	f, ok := m.files[path]
	if !ok {
		return nil, errors.FromOS(op, path, fs.ErrNotExist)
	}
	return f, nil
}

func (m *Mem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("read", path); err != nil {
		return nil, err
	}
	f, err := m.lookup("read", path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out, nil
}

func (m *Mem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("write", path); err != nil {
		return err
	}
	f, ok := m.files[path]
	if !ok {
		if !m.dirs[filepath.Dir(path)] {
			return errors.FromOS("write", path, fs.ErrNotExist)
		}
		f = &memFile{}
		m.files[path] = f
	}
	if f.attrs.Has(ReadOnly) {
		return errors.FromOS("write", path, fs.ErrPermission)
	}
	f.data = append([]byte(nil), data...)
	return nil
}

func (m *Mem) Attributes(path string) (Attributes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("stat", path); err != nil {
		return 0, err
	}
	f, err := m.lookup("stat", path)
	if err != nil {
		return 0, err
	}
	return f.attrs, nil
}

func (m *Mem) SetAttributes(path string, attrs Attributes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("chmod", path); err != nil {
		return err
	}
	f, err := m.lookup("chmod", path)
	if err != nil {
		return err
	}
	f.attrs = attrs
	return nil
}

func (m *Mem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "exists", Path: path})
	_, isFile := m.files[path]
	return isFile || m.dirs[path]
}

func (m *Mem) UserDataDir() (string, error) {
	if m.dataDir == "" {
		return "", errors.New("no user data directory")
	}
	return m.dataDir, nil
}

func (m *Mem) DesktopDir() (string, error) {
	if m.desktop == "" {
		return "", errors.New("no desktop directory")
	}
	return m.desktop, nil
}
