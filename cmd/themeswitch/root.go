package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/adapter/output"
	"github.com/jmylchreest/themeswitch/internal/ambient"
	"github.com/jmylchreest/themeswitch/internal/config"
	"github.com/jmylchreest/themeswitch/internal/page"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		origin     string
		storageDir string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themeswitch",
	Short: "Switch and persist the dark/light theme preference",
	Long: `themeswitch keeps a page's dark theme class and its saved preference in step.

The saved preference (key "themeMode", per origin) decides the theme. Without
one, the desktop's color-scheme preference does. Every switch is saved.

Running themeswitch without a subcommand prints the current theme.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.origin != "" {
			cfg.Storage.Origin = globalOpts.origin
		}
		if globalOpts.storageDir != "" {
			cfg.Storage.Dir = globalOpts.storageDir
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themeswitch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.origin, "origin", "",
		"Origin the preference is scoped to (default from config: file://)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.storageDir, "storage-dir", "",
		"Storage directory (default: ~/.local/share/themeswitch/storage)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadPage loads the page for the configured origin and initializes the theme.
func loadPage(ctx context.Context) (*page.Page, error) {
	return page.Load(ctx, cfg, page.Options{Logger: logger})
}

// writeState formats the page state to w.
func writeState(w io.Writer, p *page.Page, format, tmpl string) error {
	if format == "" {
		format = cfg.Output.Format
	}

	f, err := output.NewFormatter(output.FormatType(format), output.FormatterOptions{
		Template: tmpl,
		Color:    w == os.Stdout && ambient.StdoutIsTerminal(),
	})
	if err != nil {
		return err
	}

	state := p.State()
	if err := state.Validate(); err != nil {
		return fmt.Errorf("inconsistent theme state: %w", err)
	}
	return f.Format(w, state)
}
