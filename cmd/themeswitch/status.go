package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/adapter/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the current theme in Waybar's custom module JSON format.

This is designed to be used with Waybar's custom module:

  "custom/theme": {
    "exec": "themeswitch status",
    "interval": 5,
    "return-type": "json",
    "on-click": "themeswitch toggle --quiet"
  }

The output includes:
  - text: moon or sun glyph
  - alt: dark or light
  - tooltip: where the theme came from and when it last changed
  - class: dark or light`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	return writeState(os.Stdout, p, string(output.FormatWaybar), "")
}
