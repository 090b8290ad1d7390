package main

import (
	"fflagedit/internal/gui"
	"fflagedit/internal/tui"

	"github.com/spf13/cobra"
)

// guiCmd opens the fyne window
func guiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [file]",
		Short: "Launch the graphical editor",
		Long:  `Open the settings editor window, loading file when one is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.StartGUI(c.cfg, c.fs, firstArg(args))
		},
	}
}

// tuiCmd runs the terminal editor
func tuiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Launch the terminal editor",
		Long:  `Edit the settings file in the terminal, loading file when one is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.StartTUI(c.cfg, c.fs, firstArg(args))
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
