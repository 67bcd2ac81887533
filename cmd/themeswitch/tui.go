package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive theme switcher",
	Long: `Launch an interactive terminal switcher for the page's theme.

Changes saved by other processes are picked up while it runs.

Key bindings:
  d           Dark
  l           Light
  t, space    Toggle
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	p, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	return tui.Run(p, logger)
}
