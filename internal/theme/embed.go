package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedStyles contains the bundled stylesheets. Each one renders its dark
// variant under the marker class.
//
//go:embed styles/*.css
var EmbeddedStyles embed.FS

// DefaultStyleName is the name of the stylesheet used when none is configured.
const DefaultStyleName = "basecoat"

// GetStylesheet retrieves a bundled stylesheet by name.
// Returns the CSS content and whether it was found.
func GetStylesheet(name string) (string, bool) {
	if name == "" {
		name = DefaultStyleName
	}
	data, err := EmbeddedStyles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListStylesheets returns names of all bundled stylesheets.
func ListStylesheets() []string {
	var names []string

	entries, err := fs.ReadDir(EmbeddedStyles, "styles")
	if err != nil {
		return []string{DefaultStyleName}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".css" {
			names = append(names, strings.TrimSuffix(name, ext))
		}
	}

	return names
}
