package output

import (
	"fmt"
	"html"
	"io"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// HTMLFormatter writes the root element's start tag.
type HTMLFormatter struct{}

// NewHTMLFormatter creates a new HTML formatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Format writes <html> or <html class="..."> followed by a newline.
func (f *HTMLFormatter) Format(w io.Writer, state model.State) error {
	if state.Class == "" {
		_, err := fmt.Fprintln(w, "<html>")
		return err
	}
	_, err := fmt.Fprintf(w, "<html class=\"%s\">\n", html.EscapeString(state.Class))
	return err
}
