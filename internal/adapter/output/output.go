// Package output provides output formatters for theme state.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// Formatter formats a theme state for output.
type Formatter interface {
	// Format writes the formatted state to the writer.
	Format(w io.Writer, state model.State) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatHTML   FormatType = "html"
	FormatWaybar FormatType = "waybar"
)

// FormatTypes lists the supported formats.
var FormatTypes = []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatHTML, FormatWaybar}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom text/template for plain format
	Color    bool   // Style plain output with lipgloss
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatHTML:
		return NewHTMLFormatter(), nil
	case FormatWaybar:
		return NewWaybarFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %v)", format, FormatTypes)
	}
}
