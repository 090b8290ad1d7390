package main

import (
	"fmt"
	"os"

	"fflagedit/internal/fsys"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	rootCmd := newRootCmd(fsys.NewOS())
	if err := rootCmd.Execute(); err != nil {
		if !isReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
