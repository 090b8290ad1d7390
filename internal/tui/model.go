package tui

import (
	"fflagedit/internal/config"
	"fflagedit/internal/editor"
	"fflagedit/internal/fsys"
	"fflagedit/internal/jsonfmt"
	"fflagedit/internal/log"
	"fflagedit/internal/tui/common"
	"fflagedit/internal/tui/components"
	"fflagedit/internal/tui/messages"
	"fflagedit/internal/tui/styles"
	"fflagedit/internal/tui/views"
	"fflagedit/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows taken by everything around the textarea
const chromeHeight = 7

// Model is the terminal editor. It is the controller's View and Picker, so
// it is updated in place and always handled through a pointer.
type Model struct {
	cfg        *config.Config
	controller *editor.Controller
	keys       KeyMap
	help       help.Model
	styles     styles.Styles

	mode      common.Mode
	editor    textarea.Model
	prompt    *components.PathPrompt
	statusBar *components.StatusBar
	pickDone  func(path string, ok bool)

	pathLabel   string
	lockLabel   string
	lockEnabled bool
	showHelp    bool
	width       int

	watcher *watch.Watcher
}

// New creates the model with no file selected
func New(cfg *config.Config, fs fsys.FS) *Model {
	s := styles.FromConfig(cfg)

	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Placeholder = "Press ctrl+o to select a settings file."
	ta.Focus()

	m := &Model{
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      s,
		mode:        common.Editing,
		editor:      ta,
		prompt:      components.NewPathPrompt(s),
		statusBar:   components.NewStatusBar(s),
		pathLabel:   editor.PathLabelNotSelected,
		lockLabel:   editor.LockLabelUnlocked,
		lockEnabled: false,
	}
	m.controller = editor.New(fs, m,
		editor.WithFormatter(jsonfmt.New(cfg.Editor.Indent)),
		editor.WithDefaultDir(cfg.Editor.DefaultDir),
		editor.WithFilters(cfg.Picker.Filters),
		editor.WithOnLoad(m.follow),
	)
	return m
}

// Controller returns the file state controller behind the model
func (m *Model) Controller() *editor.Controller {
	return m.controller
}

// SetWatcher makes the model follow loaded files with w. The caller owns
// starting and stopping w.
func (m *Model) SetWatcher(w *watch.Watcher) {
	m.watcher = w
	if path := m.controller.CurrentPath(); path != "" && m.controller.State() == editor.FileLoaded {
		m.follow(path)
	}
}

func (m *Model) follow(path string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(path); err != nil {
		log.With(log.F("file", path)).WithError(err).Warn("cannot follow file changes")
	}
}

// waitForEvent turns the next watcher event into a message
func waitForEvent(events <-chan watch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.WatchStoppedMsg{}
		}
		return messages.FileEventMsg{Event: ev}
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.watcher != nil {
		cmds = append(cmds, waitForEvent(m.watcher.Events()))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case messages.FileEventMsg:
		watch.Dispatch(msg.Event, m.controller)
		if m.watcher != nil {
			return m, waitForEvent(m.watcher.Events())
		}
		return m, nil

	case messages.WatchStoppedMsg:
		log.Debug("watcher stopped, no longer following file changes")
		return m, nil

	case tea.KeyMsg:
		if m.mode == common.Prompt {
			return m.handlePromptKeys(msg)
		}
		return m.handleEditingKeys(msg)
	}

	var cmd tea.Cmd
	if m.mode == common.Prompt {
		cmd = m.prompt.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.help.Width = width
	m.editor.SetWidth(max(width-4, 20))
	m.editor.SetHeight(max(height-chromeHeight, 3))
}

func (m *Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		m.controller.Browse(m)
		if m.mode == common.Prompt {
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		_ = m.controller.Save()
		return m, nil
	case key.Matches(msg, m.keys.Lock):
		_ = m.controller.ToggleLock()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		_ = m.controller.Reload()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.finishPick("", false)
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		m.prompt.Complete()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		path := m.prompt.Value()
		m.finishPick(path, path != "")
		return m, nil
	}
	return m, m.prompt.Update(msg)
}

// finishPick leaves prompt mode before reporting, so the load lands in the
// editor.
func (m *Model) finishPick(path string, ok bool) {
	done := m.pickDone
	m.pickDone = nil
	m.mode = common.Editing
	m.prompt.Close()
	m.editor.Focus()
	if done != nil {
		done(path, ok)
	}
}

// Pick implements editor.Picker with the path prompt
func (m *Model) Pick(dir string, filters []string, done func(path string, ok bool)) {
	m.mode = common.Prompt
	m.pickDone = done
	m.editor.Blur()
	m.prompt.Open(dir, filters, m.cfg.Picker.ShowAll)
}

// Buffer implements editor.View
func (m *Model) Buffer() string {
	return m.editor.Value()
}

// SetBuffer implements editor.View
func (m *Model) SetBuffer(text string) {
	m.editor.SetValue(text)
	for m.editor.Line() > 0 {
		m.editor.CursorUp()
	}
	m.editor.CursorStart()
}

// SetPathLabel implements editor.View
func (m *Model) SetPathLabel(text string) {
	m.pathLabel = text
}

// SetStatus implements editor.View
func (m *Model) SetStatus(text string) {
	m.statusBar.SetText(text)
}

// SetLockEnabled implements editor.View
func (m *Model) SetLockEnabled(enabled bool) {
	m.lockEnabled = enabled
	m.keys.Lock.SetEnabled(enabled)
}

// SetLockLabel implements editor.View
func (m *Model) SetLockLabel(text string) {
	m.lockLabel = text
}

// Getters
func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) PathLabel() string {
	return m.pathLabel
}

func (m *Model) LockLabel() string {
	return m.lockLabel
}

func (m *Model) LockEnabled() bool {
	return m.lockEnabled
}

func (m *Model) Status() string {
	return m.statusBar.Text()
}

func (m *Model) Styles() styles.Styles {
	return m.styles
}

func (m *Model) EditorView() string {
	return m.editor.View()
}

func (m *Model) PromptView() string {
	return m.prompt.View()
}

func (m *Model) StatusView() string {
	return m.statusBar.View()
}

func (m *Model) HelpView() string {
	if m.mode == common.Prompt {
		return m.help.View(promptKeys{m.keys})
	}
	return m.help.View(m.keys)
}
