package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

var cssOpts struct {
	list bool
}

var cssCmd = &cobra.Command{
	Use:   "css [name]",
	Short: "Print a bundled stylesheet",
	Long: `Print a bundled stylesheet defining the light variables on :root and the
dark overrides on the dark class.

Without a name the configured stylesheet (theme.stylesheet) is printed.

Examples:
  themeswitch css
  themeswitch css contrast
  themeswitch css --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCSS,
}

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.Flags().BoolVar(&cssOpts.list, "list", false, "List bundled stylesheets")
}

func runCSS(cmd *cobra.Command, args []string) error {
	if cssOpts.list {
		fmt.Println(strings.Join(theme.ListStylesheets(), "\n"))
		return nil
	}

	name := cfg.Theme.Stylesheet
	if len(args) == 1 {
		name = args[0]
	}

	css, found := theme.GetStylesheet(name)
	if !found {
		return fmt.Errorf("unknown stylesheet %q (available: %s)",
			name, strings.Join(theme.ListStylesheets(), ", "))
	}

	fmt.Print(css)
	return nil
}
