package components

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"fflagedit/internal/log"
	"fflagedit/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
)

const maxCandidates = 8

// PathPrompt asks for a file path. Tab completes against the directory
// listing, offering only names that match the filters unless all files are
// shown.
type PathPrompt struct {
	input      textinput.Model
	filters    []glob.Glob
	showAll    bool
	candidates []string
	styles     styles.Styles
}

func NewPathPrompt(s styles.Styles) *PathPrompt {
	input := textinput.New()
	input.Prompt = "Open: "
	input.Placeholder = "path to a settings file"
	input.CharLimit = 0
	input.Width = 60

	return &PathPrompt{
		input:  input,
		styles: s,
	}
}

// Open resets the prompt to dir and focuses it. Patterns that fail to
// compile are skipped.
func (p *PathPrompt) Open(dir string, filters []string, showAll bool) tea.Cmd {
	p.filters = p.filters[:0]
	for _, pattern := range filters {
		g, err := glob.Compile(pattern)
		if err != nil {
			log.With(log.F("filter", pattern)).WithError(err).Warn("ignoring picker filter")
			continue
		}
		p.filters = append(p.filters, g)
	}
	p.showAll = showAll || len(p.filters) == 0
	p.candidates = nil

	value := dir
	if value != "" && !strings.HasSuffix(value, string(filepath.Separator)) {
		value += string(filepath.Separator)
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close blurs the prompt
func (p *PathPrompt) Close() {
	p.input.Blur()
	p.candidates = nil
}

func (p *PathPrompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

func (p *PathPrompt) SetValue(value string) {
	p.input.SetValue(value)
	p.input.CursorEnd()
}

// Candidates returns the names offered by the last completion
func (p *PathPrompt) Candidates() []string {
	return p.candidates
}

// Accepts reports whether a file name passes the filters
func (p *PathPrompt) Accepts(name string) bool {
	if p.showAll {
		return true
	}
	for _, g := range p.filters {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Complete extends the value with the longest common prefix of the matching
// entries. Directories are always offered.
func (p *PathPrompt) Complete() {
	dirPart, prefix := filepath.Split(p.input.Value())
	readDir := dirPart
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		log.With(log.F("directory", readDir)).WithError(err).Debug("completion failed")
		p.candidates = nil
		return
	}

	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if entry.IsDir() {
			matches = append(matches, name+string(filepath.Separator))
			continue
		}
		if p.Accepts(name) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		p.candidates = nil
	case 1:
		p.SetValue(dirPart + matches[0])
		p.candidates = nil
	default:
		p.SetValue(dirPart + commonPrefix(matches))
		p.candidates = matches
	}
}

func (p *PathPrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *PathPrompt) View() string {
	var sb strings.Builder
	sb.WriteString(p.input.View())

	if len(p.candidates) > 0 {
		shown := p.candidates
		if len(shown) > maxCandidates {
			shown = shown[:maxCandidates]
		}
		sb.WriteString("\n")
		sb.WriteString(p.styles.Help.Render(strings.Join(shown, "  ")))
		if extra := len(p.candidates) - len(shown); extra > 0 {
			sb.WriteString(p.styles.Help.Render("  ..."))
		}
	}

	return p.styles.Prompt.Render(sb.String())
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}
