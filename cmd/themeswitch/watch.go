package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/store"
)

var watchOpts struct {
	format string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the saved preference and print each change",
	Long: `Print the current theme, then print it again whenever another process
saves a new preference for the same origin.

Useful for status bars that read a stream, e.g. Waybar with
"exec": "themeswitch watch --format waybar" and no interval.

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.format, "format", "f", "",
		"Output format: plain, json, yaml, html, waybar")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := loadPage(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	fs, ok := p.Store.(*store.FileStore)
	if !ok {
		return fmt.Errorf("storage for origin %q is not file backed, nothing to watch", p.Origin)
	}

	changes := fs.Subscribe()

	watcher, err := store.NewFileWatcher(fs, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	logger.Debug("watching storage", "path", fs.Path(), "key", p.Controller.StorageKey())

	if err := writeState(os.Stdout, p, watchOpts.format, ""); err != nil {
		return err
	}

	return followChanges(ctx, changes, p.Controller.StorageKey(), func() error {
		if err := p.Sync(ctx); err != nil {
			return err
		}
		return writeState(os.Stdout, p, watchOpts.format, "")
	})
}

// followChanges calls onChange for every change to key until ctx is done or
// the channel closes.
func followChanges(ctx context.Context, changes <-chan store.ChangeEvent, key string, onChange func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			if ev.Key != key {
				continue
			}
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}
