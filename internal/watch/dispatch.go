package watch

import "fflagedit/internal/log"

// Target receives file events. editor.Controller satisfies it.
type Target interface {
	CurrentPath() string
	NotifyChanged(path string)
	RefreshLockLabel(path string) error
}

// Dispatch applies ev to t. Content changes and removals only mark the file
// as changed; the buffer is never reloaded behind the user's back.
func Dispatch(ev Event, t Target) {
	current := t.CurrentPath()
	if current == "" || !samePath(current, ev.Path) {
		return
	}

	switch ev.Kind {
	case AttributesChanged:
		if err := t.RefreshLockLabel(current); err != nil {
			log.With(log.F("file", current)).WithError(err).Warn("refreshing lock label failed")
		}
	case Changed, Removed:
		t.NotifyChanged(current)
	}
}
