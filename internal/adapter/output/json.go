package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// JSONFormatter formats state as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the state as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, state model.State) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state)
}
