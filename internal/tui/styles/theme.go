package styles

import (
	"fflagedit/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles defines the core UI styles
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Path     lipgloss.Style
	Locked   lipgloss.Style
	Unlocked lipgloss.Style
	Disabled lipgloss.Style
	Editor   lipgloss.Style
	Prompt   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
}

// Theme is the default palette
var Theme = New(config.GetTheme("default"))

// New builds styles from a palette keyed like config.GetTheme
func New(colors map[string]string) Styles {
	color := func(key string) lipgloss.Color {
		return lipgloss.Color(colors[key])
	}

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color("primary")),
		Path: lipgloss.NewStyle().
			Foreground(color("emphasis")),
		Locked: lipgloss.NewStyle().
			Foreground(color("warning")).
			Bold(true),
		Unlocked: lipgloss.NewStyle().
			Foreground(color("success")),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color("border")),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(color("info")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(color("info")),
		Error: lipgloss.NewStyle().
			Foreground(color("error")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(color("success")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
	}
}

// FromConfig builds styles from the configured theme colors
func FromConfig(cfg *config.Config) Styles {
	return New(map[string]string{
		"primary":  cfg.Theme.Primary,
		"success":  cfg.Theme.Success,
		"warning":  cfg.Theme.Warning,
		"error":    cfg.Theme.Error,
		"info":     cfg.Theme.Info,
		"emphasis": cfg.Theme.Emphasis,
		"border":   cfg.Theme.Border,
	})
}
