package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mealmate/internal/ui"
)

var errNotTerminal = errors.New("the interactive UI needs a terminal; use a subcommand such as `mealmate search` instead")

func runTUI(cmd *cobra.Command, ctx *commandContext) error {
	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return errNotTerminal
	}

	svc, err := ctx.services(true)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Logger:       svc.logger,
		PrefsPath:    svc.cfg.UI.PrefsPath,
		Debounce:     svc.cfg.SearchDebounce(),
		StaleDiscard: svc.cfg.UI.DiscardStaleResults,
	}
	if svc.cfg.UI.Thumbnails {
		opts.Images = svc.client
	}

	svc.logger.Info("starting tui", "base_url", svc.cfg.API.BaseURL, "thumbnails", svc.cfg.UI.Thumbnails)
	program := tea.NewProgram(ui.New(svc.repo, opts), tea.WithAltScreen())
	final, err := program.Run()
	if m, ok := final.(ui.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
