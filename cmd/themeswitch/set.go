package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

var setOpts struct {
	mode   string
	format string
	quiet  bool
}

var setCmd = &cobra.Command{
	Use:   "set [dark|light|toggle]",
	Short: "Switch the theme and save the preference",
	Long: `Send the theme signal to the page and save the resulting preference.

"dark" and "light" force that theme. "toggle", no argument, or any other
--mode value switches to the opposite of the current theme.

Examples:
  themeswitch set dark
  themeswitch set light
  themeswitch set toggle
  themeswitch set --mode dark --format json`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.ModeDark), string(theme.ModeLight), "toggle"},
	RunE:      runSet,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch to the opposite theme",
	Long: `Send the theme signal without a mode, switching to the opposite of the
current theme, and save the preference.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return switchTheme(cmd, "")
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(toggleCmd)

	setCmd.Flags().StringVar(&setOpts.mode, "mode", "",
		"Mode carried by the signal (dark, light; anything else toggles)")

	for _, c := range []*cobra.Command{setCmd, toggleCmd} {
		c.Flags().StringVarP(&setOpts.format, "format", "f", "",
			"Output format: plain, json, yaml, html, waybar")
		c.Flags().BoolVarP(&setOpts.quiet, "quiet", "q", false,
			"Do not print the resulting theme")
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	mode := setOpts.mode
	if len(args) == 1 {
		if mode != "" && mode != args[0] {
			return fmt.Errorf("conflicting modes: argument %q and --mode %q", args[0], mode)
		}
		mode = args[0]
	}

	// "toggle" is not a mode; the signal toggles without one
	if mode == "toggle" {
		mode = ""
	}
	if _, ok := theme.ParseMode(mode); !ok && mode != "" {
		logger.Debug("unrecognized mode, toggling", "mode", mode)
	}

	return switchTheme(cmd, mode)
}

// switchTheme loads the page, dispatches the theme signal and prints the result.
func switchTheme(cmd *cobra.Command, mode string) error {
	p, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	before := p.Controller.Mode()
	if err := p.Dispatch(cmd.Context(), mode); err != nil {
		return fmt.Errorf("failed to switch theme: %w", err)
	}
	logger.Debug("theme switched", "from", before, "to", p.Controller.Mode(), "mode", mode)

	if setOpts.quiet {
		return nil
	}
	return writeState(os.Stdout, p, setOpts.format, "")
}
