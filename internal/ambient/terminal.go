package ambient

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Terminal asks the terminal for its background color. It only answers when
// stdout is a terminal.
type Terminal struct {
	IsTerminal        func() bool
	HasDarkBackground func() bool
}

// Name implements Detector.
func (Terminal) Name() string { return "terminal" }

// Detect implements Detector.
func (t Terminal) Detect(context.Context) (bool, error) {
	isTerm := t.IsTerminal
	if isTerm == nil {
		isTerm = StdoutIsTerminal
	}
	if !isTerm() {
		return false, fmt.Errorf("stdout is not a terminal: %w", ErrUnavailable)
	}

	hasDark := t.HasDarkBackground
	if hasDark == nil {
		hasDark = lipgloss.HasDarkBackground
	}
	return hasDark(), nil
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
