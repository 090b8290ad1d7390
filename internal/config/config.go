package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fflagedit/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Default settings file names offered by the file picker.
var DefaultFilters = []string{"IxpSettings.json", "ClientAppSettings.json"}

// Config represents the application configuration structure.
type Config struct {
	Editor struct {
		Indent     string `yaml:"indent"`      // Indent used when pretty-printing JSON
		DefaultDir string `yaml:"default_dir"` // Picker start directory; empty probes the client install
	} `yaml:"editor"`
	Picker struct {
		Filters []string `yaml:"filters"`  // File name globs offered by the picker
		ShowAll bool     `yaml:"show_all"` // Start with the "all files" choice selected
	} `yaml:"picker"`
	Watch struct {
		Enabled    bool `yaml:"enabled"`     // Follow external changes to the open file
		DebounceMS int  `yaml:"debounce_ms"` // Coalesce bursts of events within this window
	} `yaml:"watch"`
	GUI struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"gui"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
	Debug bool `yaml:"debug"`

	path string
}

// DefaultPath returns ~/.config/fflagedit/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fflagedit", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data, path)
}

// Parse reads YAML configuration on top of the defaults. path is only
// recorded for Save and error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.path = path

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg fileConfig
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	tempCfg.mergeInto(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// fileConfig mirrors Config with pointers so absent keys can be told apart
// from zero values.
type fileConfig struct {
	Editor struct {
		Indent     *string `yaml:"indent"`
		DefaultDir *string `yaml:"default_dir"`
	} `yaml:"editor"`
	Picker struct {
		Filters []string `yaml:"filters"`
		ShowAll *bool    `yaml:"show_all"`
	} `yaml:"picker"`
	Watch struct {
		Enabled    *bool `yaml:"enabled"`
		DebounceMS *int  `yaml:"debounce_ms"`
	} `yaml:"watch"`
	GUI struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"gui"`
	Theme struct {
		Name     string  `yaml:"name"`
		Primary  *string `yaml:"primary"`
		Success  *string `yaml:"success"`
		Warning  *string `yaml:"warning"`
		Error    *string `yaml:"error"`
		Info     *string `yaml:"info"`
		Emphasis *string `yaml:"emphasis"`
		Border   *string `yaml:"border"`
	} `yaml:"theme"`
	Debug bool `yaml:"debug"`
}

func (f *fileConfig) mergeInto(cfg *Config) {
	if f.Editor.Indent != nil {
		cfg.Editor.Indent = *f.Editor.Indent
	}
	if f.Editor.DefaultDir != nil {
		cfg.Editor.DefaultDir = *f.Editor.DefaultDir
	}
	if len(f.Picker.Filters) > 0 {
		cfg.Picker.Filters = f.Picker.Filters
	}
	if f.Picker.ShowAll != nil {
		cfg.Picker.ShowAll = *f.Picker.ShowAll
	}
	if f.Watch.Enabled != nil {
		cfg.Watch.Enabled = *f.Watch.Enabled
	}
	if f.Watch.DebounceMS != nil {
		cfg.Watch.DebounceMS = *f.Watch.DebounceMS
	}
	if f.GUI.Width > 0 {
		cfg.GUI.Width = f.GUI.Width
	}
	if f.GUI.Height > 0 {
		cfg.GUI.Height = f.GUI.Height
	}
	if f.Theme.Name != "" {
		cfg.ApplyTheme(f.Theme.Name)
	}
	// Individual colors override the named palette
	for _, c := range []struct {
		value *string
		dst   *string
	}{
		{f.Theme.Primary, &cfg.Theme.Primary},
		{f.Theme.Success, &cfg.Theme.Success},
		{f.Theme.Warning, &cfg.Theme.Warning},
		{f.Theme.Error, &cfg.Theme.Error},
		{f.Theme.Info, &cfg.Theme.Info},
		{f.Theme.Emphasis, &cfg.Theme.Emphasis},
		{f.Theme.Border, &cfg.Theme.Border},
	} {
		if c.value != nil {
			*c.dst = *c.value
		}
	}
	cfg.Debug = f.Debug
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Editor.Indent = "  "
	cfg.Editor.DefaultDir = ""

	cfg.Picker.Filters = append([]string(nil), DefaultFilters...)
	cfg.Picker.ShowAll = false

	cfg.Watch.Enabled = true
	cfg.Watch.DebounceMS = 200

	cfg.GUI.Width = 800
	cfg.GUI.Height = 600

	cfg.ApplyTheme("default")

	return cfg
}

// New creates a configuration with default values.
func New() *Config {
	return defaultConfig()
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	return SaveConfig(c, c.path)
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if strings.Trim(c.Editor.Indent, " \t") != "" {
		return errors.NewConfigError("indent must contain only spaces or tabs", "editor.indent", errors.InvalidConfig, nil)
	}

	if len(c.Picker.Filters) == 0 {
		return errors.NewConfigError("at least one file name filter is required", "picker.filters", errors.InvalidConfig, nil)
	}
	if _, err := c.FilterGlobs(); err != nil {
		return err
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewConfigError("debounce must be >= 0 milliseconds", "watch.debounce_ms", errors.InvalidConfig, nil)
	}

	if c.GUI.Width < 0 || c.GUI.Height < 0 {
		return errors.NewConfigError("window size must not be negative", "gui", errors.InvalidConfig, nil)
	}

	return nil
}

// FilterGlobs compiles the picker's file name filters.
func (c *Config) FilterGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Picker.Filters))
	for i, pattern := range c.Picker.Filters {
		if pattern == "" {
			return nil, errors.NewConfigError(fmt.Sprintf("filter %d is empty", i), "picker.filters", errors.InvalidConfig, nil)
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("filter %q does not compile", pattern), "picker.filters", errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// MatchesFilter reports whether a file's base name matches any picker filter.
func (c *Config) MatchesFilter(name string) bool {
	globs, err := c.FilterGlobs()
	if err != nil {
		return false
	}
	base := filepath.Base(name)
	for _, g := range globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// GetTheme returns a predefined theme by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
