package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fflagedit/internal/editor"
	"fflagedit/internal/fsys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusView struct {
	buffer string
	status string
}

func (v *statusView) Buffer() string        { return v.buffer }
func (v *statusView) SetBuffer(text string) { v.buffer = text }
func (v *statusView) SetPathLabel(string)   {}
func (v *statusView) SetStatus(text string) { v.status = text }
func (v *statusView) SetLockEnabled(bool)   {}
func (v *statusView) SetLockLabel(string)   {}

func dispatchAll(t *testing.T, w *Watcher, target Target) {
	t.Helper()
	for _, ev := range collect(t, w.Events(), 400*time.Millisecond) {
		Dispatch(ev, target)
	}
}

func TestOwnSaveIsNotReportedAsExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ClientAppSettings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o444))

	w := startWatcher(t, 50*time.Millisecond, path)
	view := &statusView{}
	ctrl := editor.New(fsys.NewOS(), view)

	require.NoError(t, ctrl.Select(path))
	dispatchAll(t, w, ctrl)
	assert.Equal(t, editor.StatusLoaded, view.status, "the load's own chmod is not a change")

	view.buffer = `{"DFIntTaskSchedulerTargetFps":144}`
	require.NoError(t, ctrl.Save())
	dispatchAll(t, w, ctrl)
	assert.Equal(t, editor.StatusSaved, view.status)

	require.NoError(t, os.WriteFile(path, []byte(`{"b":2}`), 0o644))
	dispatchAll(t, w, ctrl)
	assert.Equal(t, editor.StatusChangedOnDisk, view.status)
}
