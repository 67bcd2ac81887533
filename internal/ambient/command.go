package ambient

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner runs commands with os/exec.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// GSettings asks GNOME's gsettings for color-scheme, then for a gtk-theme
// name containing "dark".
type GSettings struct {
	Run Runner
}

// Name implements Detector.
func (GSettings) Name() string { return "gsettings" }

// Detect implements Detector.
func (g GSettings) Detect(ctx context.Context) (bool, error) {
	run := g.Run
	if run == nil {
		if _, err := exec.LookPath("gsettings"); err != nil {
			return false, fmt.Errorf("command not found: %w", ErrUnavailable)
		}
		run = execRunner
	}

	// GNOME 42+
	out, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err == nil {
		if dark, perr := ParseScheme(string(out)); perr == nil {
			return dark, nil
		}
	}

	out, err = run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if err != nil {
		return false, fmt.Errorf("gtk-theme: %w: %w", ErrUnavailable, err)
	}
	name := strings.Trim(strings.TrimSpace(string(out)), `'"`)
	if name == "" {
		return false, fmt.Errorf("empty gtk-theme: %w", ErrUnavailable)
	}
	return strings.Contains(strings.ToLower(name), "dark"), nil
}

// MacOS reads AppleInterfaceStyle. The key only exists in dark mode.
type MacOS struct {
	Run  Runner
	GOOS string
}

// Name implements Detector.
func (MacOS) Name() string { return "macos" }

// Detect implements Detector.
func (m MacOS) Detect(ctx context.Context) (bool, error) {
	goos := m.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos != "darwin" {
		return false, fmt.Errorf("not darwin: %w", ErrUnavailable)
	}

	run := m.Run
	if run == nil {
		run = execRunner
	}

	out, err := run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Key doesn't exist in light mode
			return false, nil
		}
		return false, fmt.Errorf("defaults: %w: %w", ErrUnavailable, err)
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), nil
}
