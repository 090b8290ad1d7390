package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"fflagedit/internal/errors"
	"fflagedit/internal/log"

	"github.com/spf13/cobra"
)

// locateCmd prints where the picker would start and the settings files
// found below it.
func locateCmd(c *cli) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find settings files under the client install",
		Long: `Print the directory the file picker opens in, then every file below it
whose name matches the configured picker filters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _ := c.controller()
			dir := ctrl.DefaultDirectory()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, dir)
			found, err := c.findSettings(dir, maxDepth)
			if err != nil {
				return err
			}
			for _, path := range found {
				fmt.Fprintln(out, "  "+path)
			}
			if len(found) == 0 {
				fmt.Fprintln(out, "  no settings files found")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "depth", 4, "how many directory levels to search")
	return cmd
}

// findSettings walks dir up to maxDepth levels deep. Unreadable
// directories are skipped.
func (c *cli) findSettings(dir string, maxDepth int) ([]string, error) {
	if !c.fs.Exists(dir) {
		return nil, errors.NewFileError("cannot search directory", dir, errors.FileNotFound, nil)
	}

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.With(log.F("path", path)).WithError(err).Debug("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && depth(dir, path) > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if c.cfg.MatchesFilter(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	n := 1
	for _, r := range rel {
		if r == filepath.Separator {
			n++
		}
	}
	return n
}
