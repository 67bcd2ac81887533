package output

import (
	"fmt"
	"io"
	"text/template"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeswitch/internal/model"
)

var (
	darkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#27272A")).
			Padding(0, 1)
	lightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#18181B")).
			Background(lipgloss.Color("#F4F4F5")).
			Padding(0, 1)
)

// PlainFormatter prints the mode, or the state rendered through a template.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes the state as plain text.
func (f *PlainFormatter) Format(w io.Writer, state model.State) error {
	if f.template != nil {
		if err := f.template.Execute(w, state); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	text := state.Mode
	if f.opts.Color {
		text = ModeBadge(state.Mode)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// ModeBadge renders the mode with the colors of that mode.
func ModeBadge(mode string) string {
	if mode == "dark" {
		return darkStyle.Render(mode)
	}
	return lightStyle.Render(mode)
}
