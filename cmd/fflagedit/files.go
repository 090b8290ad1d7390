package main

import (
	"fmt"
	"io"

	"fflagedit/internal/editor"
	"fflagedit/internal/errors"

	"github.com/spf13/cobra"
)

// showCmd prints the file the way the editors display it
func showCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a settings file, pretty-printed",
		Long: `Load the settings file and print it as the editors show it.
Loading clears the read-only attribute, as it does in the editors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, view := c.controller()
			if err := ctrl.Select(args[0]); err != nil {
				return view.reported(cmd.OutOrStdout(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.Buffer())
			return nil
		},
	}
}

// saveCmd replaces a settings file with new content
func saveCmd(c *cli) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Write new content to a settings file",
		Long: `Replace the settings file with the content of --from, or of standard
input when --from is not given. The content is written exactly as read;
it is not checked or reformatted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.readInput(cmd, from)
			if err != nil {
				return err
			}

			ctrl, view := c.controller()
			if err := ctrl.Select(args[0]); err != nil {
				return view.reported(cmd.OutOrStdout(), err)
			}
			view.SetBuffer(content)
			return view.reported(cmd.OutOrStdout(), ctrl.Save())
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "read the new content from this file instead of standard input")
	return cmd
}

func (c *cli) readInput(cmd *cobra.Command, from string) (string, error) {
	if from != "" {
		data, err := c.fs.ReadFile(from)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", from)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "reading standard input")
	}
	return string(data), nil
}

// lockCmd sets the read-only attribute to locked
func lockCmd(c *cli, use string, locked bool) *cobra.Command {
	short := "Make a settings file read-only"
	if !locked {
		short = "Make a settings file writable"
	}

	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.attached(cmd, args[0], func(ctrl *editor.Controller) error {
				return ctrl.SetLock(locked)
			})
		},
	}
}

// toggleCmd flips the read-only attribute
func toggleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <file>",
		Short: "Flip the read-only attribute of a settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.attached(cmd, args[0], func(ctrl *editor.Controller) error {
				return ctrl.ToggleLock()
			})
		},
	}
}

// statusCmd prints the lock label without changing anything
func statusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <file>",
		Short: "Show whether a settings file is read-only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, view := c.controller()
			if err := ctrl.Attach(args[0]); err != nil {
				return view.reported(cmd.OutOrStdout(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.pathLabel)
			fmt.Fprintln(cmd.OutOrStdout(), view.lockLabel)
			return nil
		},
	}
}

// attached runs op against path without loading it, then prints the
// status and the resulting lock label.
func (c *cli) attached(cmd *cobra.Command, path string, op func(*editor.Controller) error) error {
	ctrl, view := c.controller()
	out := cmd.OutOrStdout()

	if err := ctrl.Attach(path); err != nil {
		return view.reported(out, err)
	}
	if err := view.reported(out, op(ctrl)); err != nil {
		return err
	}
	fmt.Fprintln(out, view.lockLabel)
	return nil
}
