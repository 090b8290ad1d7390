// Package jsonfmt re-indents JSON text for display.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"strings"

	"fflagedit/internal/errors"
)

// DefaultIndent is the indent used when none is configured.
const DefaultIndent = "  "

// Editors on Windows often prefix UTF-8 files with a byte order mark.
const byteOrderMark = "\uFEFF"

// Formatter pretty-prints JSON with a fixed indent.
type Formatter struct {
	Indent string
}

// New returns a Formatter using indent, or DefaultIndent when indent is empty.
func New(indent string) Formatter {
	if indent == "" {
		indent = DefaultIndent
	}
	return Formatter{Indent: indent}
}

// PrettyPrint re-indents text, dropping a leading byte order mark. Object
// keys keep their source order and numbers keep their source spelling. Text
// that does not parse returns an InvalidJSON error.
func (f Formatter) PrettyPrint(text string) (string, error) {
	src := []byte(strings.TrimSpace(strings.TrimPrefix(text, byteOrderMark)))
	if !json.Valid(src) {
		// Unmarshal again only to get a descriptive cause
		var v interface{}
		cause := json.Unmarshal(src, &v)
		return "", errors.NewFileError("not valid JSON", "", errors.InvalidJSON, cause)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, src, "", f.indent()); err != nil {
		return "", errors.NewFileError("not valid JSON", "", errors.InvalidJSON, err)
	}
	return out.String(), nil
}

// TryPrettyPrint returns the pretty-printed text and true, or text unchanged
// and false when it is not valid JSON.
func (f Formatter) TryPrettyPrint(text string) (string, bool) {
	pretty, err := f.PrettyPrint(text)
	if err != nil {
		return text, false
	}
	return pretty, true
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return DefaultIndent
	}
	return f.Indent
}

// TryPrettyPrint formats with DefaultIndent.
func TryPrettyPrint(text string) (string, bool) {
	return New("").TryPrettyPrint(text)
}
