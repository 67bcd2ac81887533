package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/page"
)

var resetOpts struct {
	all   bool
	quiet bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved preference",
	Long: `Remove the saved preference for the origin so the desktop's color-scheme
preference decides again, then print the resulting theme.

With --all every key stored for the origin is removed.

Examples:
  themeswitch reset
  themeswitch --origin https://app.example reset --all`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetOpts.all, "all", false,
		"Remove every key stored for the origin")
	resetCmd.Flags().BoolVarP(&resetOpts.quiet, "quiet", "q", false,
		"Do not print the resulting theme")
}

func runReset(cmd *cobra.Command, args []string) error {
	st := page.OpenStore(cfg, logger)

	keys := []string{cfg.Storage.Key}
	if resetOpts.all {
		var err error
		if keys, err = st.Keys(); err != nil {
			st.Close()
			return fmt.Errorf("failed to list stored keys: %w", err)
		}
	}

	for _, key := range keys {
		if err := st.Delete(key); err != nil {
			st.Close()
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
	}
	logger.Debug("reset storage", "origin", cfg.Storage.Origin, "keys", keys)

	if err := st.Close(); err != nil {
		return err
	}

	if resetOpts.quiet {
		return nil
	}

	p, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	return writeState(os.Stdout, p, "", "")
}
