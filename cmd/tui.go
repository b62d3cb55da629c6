package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/vmsouza/musicctl/internal/shared"
	"github.com/vmsouza/musicctl/internal/ui"
)

// TUI launches the interactive terminal UI over the catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/musicctl-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if err := ui.Run(ctx, r.store, r.catalog, r.bus); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
