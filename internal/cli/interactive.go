package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func (a *app) newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ui",
		Aliases: []string{"board"},
		Short:   "Open the interactive todo board",
		Args:    argsUsage(0, "todo ui"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			if err := tui.RunBoard(s, tui.Options{WatchPath: a.watchPath(), Logger: a.logger}); err != nil {
				return err
			}
			if err := a.saved(s); err != nil {
				return err
			}
			ui.OK(a.out, "saved")
			return nil
		},
	}
}

func (a *app) newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Create several todos at once in a two-section form",
		Args:  argsUsage(0, "todo form"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			if err := tui.RunForm(s, tui.Options{Logger: a.logger}); err != nil {
				return err
			}
			return a.saved(s)
		},
	}
}
