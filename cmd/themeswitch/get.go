package main

import (
	"os"

	"github.com/spf13/cobra"
)

var getOpts struct {
	format   string
	template string
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current theme",
	Long: `Load the page and print the theme it starts with.

The saved preference wins; without one the desktop's color-scheme preference
decides. Loading never writes the preference.

Formats:
  plain   dark or light (default)
  json    full state as JSON
  yaml    full state as YAML
  html    the root element's start tag, e.g. <html class="dark">
  waybar  Waybar custom module JSON

Examples:
  themeswitch get
  themeswitch get --format json
  themeswitch get --template '{{.Mode}} ({{.Source}})'
  themeswitch --origin https://app.example get --format html`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "",
		"Output format: plain, json, yaml, html, waybar")
	getCmd.Flags().StringVar(&getOpts.template, "template", "",
		"Go template for plain output (fields: Mode, Dark, Source, Detector, Stored, Origin, Class, ChangedAt)")
}

func runGet(cmd *cobra.Command, args []string) error {
	p, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	return writeState(os.Stdout, p, getOpts.format, getOpts.template)
}
