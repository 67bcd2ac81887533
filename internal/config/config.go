// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/themeswitch/internal/ambient"
	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// Default configuration values.
const (
	DefaultOrigin        = "file://"
	DefaultFormat        = "plain"
	DefaultTimeout       = "2s"
	DefaultStylesheet    = theme.DefaultStyleName
	DefaultOverrideValue = ""
)

// Config represents the themeswitch configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Theme   ThemeConfig   `toml:"theme"`
	Ambient AmbientConfig `toml:"ambient"`
	Output  OutputConfig  `toml:"output"`
}

// StorageConfig controls where the preference is persisted.
type StorageConfig struct {
	Dir    string `toml:"dir"`    // Empty = $XDG_DATA_HOME/themeswitch/storage
	Origin string `toml:"origin"` // Storage is scoped to this origin
	Key    string `toml:"key"`    // Key holding the preference
}

// ThemeConfig controls the marker class and signal name.
type ThemeConfig struct {
	Class      string `toml:"class"`
	Event      string `toml:"event"`
	Stylesheet string `toml:"stylesheet"`
}

// AmbientConfig controls color scheme detection.
type AmbientConfig struct {
	Detectors []string `toml:"detectors"` // Empty = default order
	Override  string   `toml:"override"`  // "dark", "light" or empty
	Timeout   string   `toml:"timeout"`   // Per-detector timeout
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:    "",
			Origin: DefaultOrigin,
			Key:    theme.StorageKey,
		},
		Theme: ThemeConfig{
			Class:      theme.DarkClass,
			Event:      theme.EventName,
			Stylesheet: DefaultStylesheet,
		},
		Ambient: AmbientConfig{
			Detectors: nil,
			Override:  DefaultOverrideValue,
			Timeout:   DefaultTimeout,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "themeswitch", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "themeswitch")
}

// StorageDir returns the configured storage directory or the default one.
func (c *Config) StorageDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return filepath.Join(DataPath(), "storage")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := c.DetectorTimeout(); err != nil {
		return err
	}

	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	if !document.ValidToken(c.Theme.Class) {
		return fmt.Errorf("theme.class must be a single class name without whitespace, got %q", c.Theme.Class)
	}
	if c.Theme.Event == "" {
		return errors.New("theme.event must not be empty")
	}

	if _, ok := theme.ParseMode(c.Ambient.Override); c.Ambient.Override != "" && !ok {
		return fmt.Errorf("ambient.override must be %q, %q or empty, got %q",
			theme.ModeDark, theme.ModeLight, c.Ambient.Override)
	}

	for _, name := range c.Ambient.Detectors {
		if _, err := ambient.ByName(name); err != nil {
			return fmt.Errorf("ambient.detectors: %w", err)
		}
	}

	if _, found := theme.GetStylesheet(c.Theme.Stylesheet); !found {
		return fmt.Errorf("theme.stylesheet: unknown stylesheet %q", c.Theme.Stylesheet)
	}

	return nil
}

// DetectorTimeout parses the per-detector timeout.
func (c *Config) DetectorTimeout() (time.Duration, error) {
	if c.Ambient.Timeout == "" {
		return ambient.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Ambient.Timeout)
	if err != nil {
		return 0, fmt.Errorf("ambient.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ambient.timeout must be positive, got %s", d)
	}
	return d, nil
}

// DetectorNames returns the detector order, with the override first when set.
func (c *Config) DetectorNames() []string {
	names := c.Ambient.Detectors
	if len(names) == 0 {
		names = ambient.DefaultOrder
	}

	switch c.Ambient.Override {
	case string(theme.ModeDark):
		return append([]string{"static-dark"}, names...)
	case string(theme.ModeLight):
		return append([]string{"static-light"}, names...)
	}
	return names
}

// ControllerOptions returns the theme controller options for this config.
func (c *Config) ControllerOptions() theme.Options {
	return theme.Options{
		StorageKey: c.Storage.Key,
		DarkClass:  c.Theme.Class,
		EventName:  c.Theme.Event,
	}
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
