package messages

import "fflagedit/internal/watch"

// FileEventMsg carries a watcher event into the update loop
type FileEventMsg struct {
	Event watch.Event
}

// WatchStoppedMsg is sent once the watcher's channel closes
type WatchStoppedMsg struct{}
