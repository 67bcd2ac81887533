// Package theme keeps a document's dark marker class and the persisted
// themeMode preference in step. The preference is read once when the page
// loads, falling back to the ambient color-scheme hint, and rewritten every
// time a theme signal is handled.
package theme
