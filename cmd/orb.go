package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/adapters/tui"
)

var errNoTerminal = errors.New("doro needs an interactive terminal; try \"doro status\"")

// runOrb opens the orb for the bare "doro" command.
func runOrb(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errNoTerminal
	}

	orb, player, err := newOrb()
	if err != nil {
		return fmt.Errorf("failed to create orb: %w", err)
	}
	defer player.Stop()

	if !player.Enabled() {
		app.logger.Warn("audio unavailable, the alarm is silent")
	}

	ctx := setupSignalHandler()
	if err := tui.RunOrb(ctx, orb, app.logger); err != nil {
		return fmt.Errorf("orb error: %w", err)
	}
	return nil
}
