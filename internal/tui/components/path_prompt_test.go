package components

import (
	"os"
	"path/filepath"
	"testing"

	"fflagedit/internal/tui/styles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathPromptOpen(t *testing.T) {
	p := NewPathPrompt(styles.Theme)
	p.Open("/games", []string{"*.json", "[bad"}, false)

	assert.Equal(t, "/games"+string(filepath.Separator), p.Value())
	assert.True(t, p.Accepts("ClientAppSettings.json"))
	assert.False(t, p.Accepts("readme.txt"))

	p.Open("", nil, false)
	assert.Equal(t, "", p.Value())
	assert.True(t, p.Accepts("readme.txt"), "no filters means everything")
}

func TestPathPromptComplete(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"IxpSettings.json", "ClientAppSettings.json", "ClientLog.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ClientSettings"), 0o755))

	p := NewPathPrompt(styles.Theme)
	p.Open(dir, []string{"IxpSettings.json", "ClientAppSettings.json"}, false)

	p.SetValue(filepath.Join(dir, "Cl"))
	p.Complete()
	assert.Equal(t, filepath.Join(dir, "Client"), p.Value(), "extends to the common prefix")
	assert.Equal(t, []string{"ClientAppSettings.json", "ClientSettings" + string(filepath.Separator)}, p.Candidates())
	assert.Contains(t, p.View(), "ClientAppSettings.json")

	p.SetValue(filepath.Join(dir, "I"))
	p.Complete()
	assert.Equal(t, filepath.Join(dir, "IxpSettings.json"), p.Value())
	assert.Empty(t, p.Candidates())

	p.SetValue(filepath.Join(dir, "missing", "x"))
	p.Complete()
	assert.Empty(t, p.Candidates())
}

func TestPathPromptShowAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ClientLog.txt"), nil, 0o644))

	p := NewPathPrompt(styles.Theme)
	p.Open(dir, []string{"*.json"}, true)
	p.Complete()
	assert.Equal(t, filepath.Join(dir, "ClientLog.txt"), p.Value())
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "Client", commonPrefix([]string{"ClientApp", "ClientSettings"}))
	assert.Equal(t, "", commonPrefix([]string{"a", "b"}))
	assert.Equal(t, "", commonPrefix(nil))
	assert.Equal(t, "Einstellungen_", commonPrefix([]string{"Einstellungen_ä.json", "Einstellungen_ö.json"}), "multi-byte runes are not split")
	assert.Equal(t, "設定", commonPrefix([]string{"設定A", "設定B"}))
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar(styles.Theme)
	assert.Empty(t, s.View())
	s.SetText("ERROR: No file is selected.")
	assert.Contains(t, s.View(), "ERROR: No file is selected.")
	assert.Equal(t, "ERROR: No file is selected.", s.Text())
}
