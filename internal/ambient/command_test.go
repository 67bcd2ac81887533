package ambient

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner answers commands by their joined arguments.
func scriptedRunner(outputs map[string]string) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		key := name + " " + strings.Join(args, " ")
		out, ok := outputs[key]
		if !ok {
			return nil, errors.New("command failed: " + key)
		}
		return []byte(out), nil
	}
}

func TestGSettings(t *testing.T) {
	const (
		colorScheme = "gsettings get org.gnome.desktop.interface color-scheme"
		gtkTheme    = "gsettings get org.gnome.desktop.interface gtk-theme"
	)

	tests := []struct {
		name    string
		outputs map[string]string
		dark    bool
		wantErr bool
	}{
		{"color-scheme dark", map[string]string{colorScheme: "'prefer-dark'\n"}, true, false},
		{"color-scheme light", map[string]string{colorScheme: "'prefer-light'\n"}, false, false},
		{"default falls to gtk theme", map[string]string{colorScheme: "'default'\n", gtkTheme: "'Adwaita-dark'\n"}, true, false},
		{"light gtk theme", map[string]string{gtkTheme: "'Adwaita'\n"}, false, false},
		{"nothing available", map[string]string{}, false, true},
		{"empty gtk theme", map[string]string{gtkTheme: "''\n"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dark, err := GSettings{Run: scriptedRunner(tt.outputs)}.Detect(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dark, dark)
		})
	}
}

func TestMacOS(t *testing.T) {
	const key = "defaults read -g AppleInterfaceStyle"

	_, err := MacOS{GOOS: "linux"}.Detect(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	dark, err := MacOS{GOOS: "darwin", Run: scriptedRunner(map[string]string{key: "Dark\n"})}.Detect(context.Background())
	require.NoError(t, err)
	assert.True(t, dark)

	exitErr := func(context.Context, string, ...string) ([]byte, error) {
		return nil, &exec.ExitError{}
	}
	dark, err = MacOS{GOOS: "darwin", Run: exitErr}.Detect(context.Background())
	require.NoError(t, err)
	assert.False(t, dark, "missing key means light mode")

	_, err = MacOS{GOOS: "darwin", Run: scriptedRunner(nil)}.Detect(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTerminal(t *testing.T) {
	notTTY := Terminal{IsTerminal: func() bool { return false }}
	_, err := notTTY.Detect(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	dark := Terminal{
		IsTerminal:        func() bool { return true },
		HasDarkBackground: func() bool { return true },
	}
	got, err := dark.Detect(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}
