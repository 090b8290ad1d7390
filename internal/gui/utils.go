//go:build !nogui

package gui

import (
	"fmt"
	"io"

	"fflagedit/internal/config"

	"fyne.io/fyne/v2"
	"gopkg.in/yaml.v3"
)

// Indent choices offered in the settings dialog
var indentChoices = map[string]string{
	"2 spaces": "  ",
	"4 spaces": "    ",
	"Tab":      "\t",
}

var indentOrder = []string{"2 spaces", "4 spaces", "Tab"}

func indentName(indent string) (string, bool) {
	for name, value := range indentChoices {
		if value == indent {
			return name, true
		}
	}
	return "", false
}

// parseImportedConfig parses an imported YAML configuration file
func parseImportedConfig(reader fyne.URIReadCloser) (*config.Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return config.Parse(data, reader.URI().Path())
}

// exportConfig writes the configuration as YAML
func exportConfig(cfg *config.Config, writer io.Writer) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding to YAML: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}
