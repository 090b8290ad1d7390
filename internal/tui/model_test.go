package tui

import (
	"os"
	"path/filepath"
	"testing"

	"fflagedit/internal/config"
	"fflagedit/internal/editor"
	"fflagedit/internal/fsys"
	"fflagedit/internal/tui/common"
	"fflagedit/internal/tui/messages"
	"fflagedit/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsPath = "/data/Roblox/Versions/v1/ClientSettings/ClientAppSettings.json"

var (
	keyOpen   = tea.KeyMsg{Type: tea.KeyCtrlO}
	keySave   = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyLock   = tea.KeyMsg{Type: tea.KeyCtrlL}
	keyReload = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc    = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab    = tea.KeyMsg{Type: tea.KeyTab}
	keyHelp   = tea.KeyMsg{Type: tea.KeyF1}
)

func newTestModel(t *testing.T) (*Model, *fsys.Mem) {
	t.Helper()
	mem := fsys.NewMem("/data", "/home/u/Desktop")
	cfg := config.New()
	cfg.Watch.Enabled = false
	return New(cfg, mem), mem
}

func send(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next, "model is updated in place")
	return cmd
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestModelInitialization(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, common.Editing, m.Mode())
	assert.Equal(t, editor.PathLabelNotSelected, m.PathLabel())
	assert.Equal(t, editor.LockLabelUnlocked, m.LockLabel())
	assert.False(t, m.LockEnabled())
	assert.Empty(t, m.Status())
	assert.NotNil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Settings File Editor")
	assert.Contains(t, view, "Not Selected")
}

func TestOpenPromptLoadsFile(t *testing.T) {
	m, mem := newTestModel(t)
	mem.AddFile(settingsPath, `{"a":1,"b":2}`, fsys.ReadOnly)

	send(t, m, keyOpen)
	require.Equal(t, common.Prompt, m.Mode())
	assert.Equal(t, "/home/u/Desktop"+string(filepath.Separator), m.prompt.Value())
	assert.Contains(t, m.View(), "Open: ")

	m.prompt.SetValue(settingsPath)
	send(t, m, keyEnter)

	assert.Equal(t, common.Editing, m.Mode())
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", m.Buffer())
	assert.Equal(t, editor.PathLabelPrefix+settingsPath, m.PathLabel())
	assert.Equal(t, editor.StatusLoaded, m.Status())
	assert.True(t, m.LockEnabled())
	assert.Equal(t, editor.LockLabelUnlocked, m.LockLabel())

	attrs, err := mem.Attributes(settingsPath)
	require.NoError(t, err)
	assert.False(t, attrs.Has(fsys.ReadOnly))
}

func TestPromptCancel(t *testing.T) {
	m, mem := newTestModel(t)

	send(t, m, keyOpen)
	require.Equal(t, common.Prompt, m.Mode())
	cmd := send(t, m, keyEsc)
	assert.Nil(t, cmd, "esc in the prompt cancels instead of quitting")

	assert.Equal(t, common.Editing, m.Mode())
	assert.Equal(t, editor.NoFileSelected, m.Controller().State())
	for _, call := range mem.Calls() {
		assert.Equal(t, "exists", call.Op, "cancel reads nothing")
	}
}

func TestPromptEmptyValueCancels(t *testing.T) {
	m, _ := newTestModel(t)
	send(t, m, keyOpen)
	m.prompt.SetValue("   ")
	send(t, m, keyEnter)
	assert.Equal(t, common.Editing, m.Mode())
	assert.Equal(t, editor.NoFileSelected, m.Controller().State())
}

func TestEditAndSave(t *testing.T) {
	m, mem := newTestModel(t)
	mem.AddFile(settingsPath, `{}`, 0)
	require.NoError(t, m.Controller().Select(settingsPath))

	typeText(t, m, "x")
	assert.Equal(t, "x{}", m.Buffer())

	send(t, m, keySave)
	assert.Equal(t, editor.StatusSaved, m.Status())
	content, ok := mem.Content(settingsPath)
	require.True(t, ok)
	assert.Equal(t, "x{}", content)
}

func TestSaveWithoutFile(t *testing.T) {
	m, mem := newTestModel(t)
	send(t, m, keySave)
	assert.Equal(t, editor.StatusSelectFirst, m.Status())
	assert.Empty(t, mem.Calls())
	assert.Contains(t, m.View(), editor.StatusSelectFirst)
}

func TestLockKey(t *testing.T) {
	m, mem := newTestModel(t)

	send(t, m, keyLock)
	assert.Empty(t, m.Status(), "lock key is disabled until a file loads")
	assert.Empty(t, mem.Calls())

	mem.AddFile(settingsPath, `{}`, 0)
	require.NoError(t, m.Controller().Select(settingsPath))

	send(t, m, keyLock)
	assert.Equal(t, editor.LockLabelLocked, m.LockLabel())
	assert.Equal(t, editor.StatusNowReadOnly, m.Status())
	assert.Contains(t, m.View(), editor.LockLabelLocked)

	send(t, m, keyLock)
	assert.Equal(t, editor.LockLabelUnlocked, m.LockLabel())
	assert.Equal(t, editor.StatusNowWritable, m.Status())
}

func TestReloadDiscardsEdits(t *testing.T) {
	m, mem := newTestModel(t)
	mem.AddFile(settingsPath, `{"a":1}`, 0)
	require.NoError(t, m.Controller().Select(settingsPath))

	typeText(t, m, "junk")
	send(t, m, keyReload)
	assert.Equal(t, "{\n  \"a\": 1\n}", m.Buffer())
}

func TestMissingFile(t *testing.T) {
	m, mem := newTestModel(t)
	mem.AddFile(settingsPath, `{}`, 0)
	require.NoError(t, m.Controller().Select(settingsPath))
	mem.Remove(settingsPath)

	send(t, m, keyReload)
	assert.Equal(t, editor.StatusNotFound, m.Status())
	assert.Equal(t, editor.PathLabelNotSelected, m.PathLabel())
	assert.False(t, m.LockEnabled())
	assert.Equal(t, "{}", m.Buffer())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	send(t, m, keyHelp)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "reload")
	send(t, m, keyHelp)
	assert.False(t, m.showHelp)
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Less(t, m.editor.Width(), 100)
	assert.Positive(t, m.editor.Width())
	assert.Equal(t, 40-chromeHeight, m.editor.Height())
}

func TestFileEventMessages(t *testing.T) {
	m, mem := newTestModel(t)
	mem.AddFile(settingsPath, `{}`, 0)
	require.NoError(t, m.Controller().Select(settingsPath))

	send(t, m, messages.FileEventMsg{Event: watch.Event{Path: settingsPath, Kind: watch.Changed}})
	assert.Equal(t, editor.StatusLoaded, m.Status(), "content on disk is unchanged")

	mem.AddFile(settingsPath, `{"a":1}`, 0)
	send(t, m, messages.FileEventMsg{Event: watch.Event{Path: settingsPath, Kind: watch.Changed}})
	assert.Equal(t, editor.StatusChangedOnDisk, m.Status())
	assert.Equal(t, "{}", m.Buffer(), "buffer is not reloaded")

	require.NoError(t, mem.SetAttributes(settingsPath, fsys.ReadOnly))
	send(t, m, messages.FileEventMsg{Event: watch.Event{Path: settingsPath, Kind: watch.AttributesChanged}})
	assert.Equal(t, editor.LockLabelLocked, m.LockLabel())

	assert.Nil(t, send(t, m, messages.WatchStoppedMsg{}))
}

func TestPromptCompletion(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ClientSettings", "ClientAppSettings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(`{"k":true}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ClientSettings", "notes.txt"), nil, 0o644))

	cfg := config.New()
	cfg.Watch.Enabled = false
	cfg.Editor.DefaultDir = dir
	m := New(cfg, fsys.NewOS())

	send(t, m, keyOpen)
	typeText(t, m, "Cl")
	send(t, m, keyTab)
	assert.Equal(t, filepath.Join(dir, "ClientSettings")+string(filepath.Separator), m.prompt.Value())

	send(t, m, keyTab)
	assert.Equal(t, target, m.prompt.Value(), "notes.txt is filtered out")

	send(t, m, keyEnter)
	assert.Equal(t, "{\n  \"k\": true\n}", m.Buffer())
	assert.Equal(t, editor.FileLoaded, m.Controller().State())
}
