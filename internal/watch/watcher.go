package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"fflagedit/internal/log"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies what happened to the watched file
type EventKind int

const (
	// Changed means the file was written or recreated
	Changed EventKind = iota
	// AttributesChanged means only the file's mode changed
	AttributesChanged
	// Removed means the file was deleted or renamed away
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Changed:
		return "changed"
	case AttributesChanged:
		return "attributes changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one debounced notification about the watched file
type Event struct {
	Path      string
	Kind      EventKind
	Timestamp time.Time
}

// Watcher follows a single file. It watches the file's parent directory so
// that editors replacing the file by rename are still seen, and coalesces
// bursts of raw events that arrive within the debounce window.
type Watcher struct {
	debounce time.Duration

	// Absolute path of the watched file, guarded by mutex
	target string
	dir    string

	events    chan Event
	stopChan  chan struct{}
	doneChan  chan struct{}
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// New creates a watcher with the given debounce window
func New(debounce time.Duration) (*Watcher, error) {
	if debounce < 0 {
		return nil, fmt.Errorf("debounce must not be negative: %s", debounce)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		debounce:  debounce,
		events:    make(chan Event, 16),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Watch switches the watched file to path. Events for the previous file
// stop immediately.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return fmt.Errorf("watcher is stopped")
	}
	if dir != w.dir {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		if w.dir != "" {
			if err := w.fsWatcher.Remove(w.dir); err != nil {
				log.With(log.F("directory", w.dir)).WithError(err).Warn("removing old watch failed")
			}
		}
		w.dir = dir
	}
	w.target = abs
	log.With(log.F("file", abs)).Info("Watching file")
	return nil
}

// Target returns the absolute path being watched, or "" before Watch
func (w *Watcher) Target() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.target
}

// Events returns the channel of debounced events. It is closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins delivering events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return fmt.Errorf("watcher is stopped")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true

	go w.loop()
	log.Debug("Watcher started.")
	return nil
}

// Stop halts the watcher and closes the event channel. It may be called
// more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.WithError(err).Error("Error closing fsnotify watcher")
	}
	if wasRunning {
		<-w.doneChan
	}
	close(w.events)
	log.Debug("Watcher stopped.")
}

func (w *Watcher) loop() {
	defer close(w.doneChan)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = map[EventKind]bool{}
		path    string
	)

	flush := func() {
		for _, kind := range []EventKind{Changed, AttributesChanged, Removed} {
			if !pending[kind] {
				continue
			}
			w.send(Event{Path: path, Kind: kind, Timestamp: time.Now()})
		}
		pending = map[EventKind]bool{}
		timerC = nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			target := w.Target()
			if target == "" || filepath.Clean(event.Name) != target {
				continue
			}
			kind, relevant := classify(event.Op)
			if !relevant {
				continue
			}
			log.With(log.F("file", event.Name), log.F("op", event.Op.String())).Debug("raw file event")

			if path != target {
				// A switch of target drops anything pending for the old file
				pending = map[EventKind]bool{}
				path = target
			}
			pending[kind] = true

			if w.debounce == 0 {
				flush()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			if path == w.Target() {
				flush()
			} else {
				pending = map[EventKind]bool{}
				timerC = nil
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// send delivers without blocking the loop on a slow consumer
func (w *Watcher) send(ev Event) {
	select {
	case w.events <- ev:
	default:
		log.With(log.F("file", ev.Path), log.F("kind", ev.Kind.String())).Warn("Event channel is full, dropped event")
	}
}

// classify maps raw fsnotify operations onto event kinds
func classify(op fsnotify.Op) (EventKind, bool) {
	switch {
	case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
		return Removed, true
	case op.Has(fsnotify.Create) || op.Has(fsnotify.Write):
		return Changed, true
	case op.Has(fsnotify.Chmod):
		return AttributesChanged, true
	default:
		return 0, false
	}
}
