package main

import (
	"fmt"

	"fflagedit/internal/config"
	"fflagedit/internal/fsys"
	"fflagedit/internal/log"

	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once the root has run
type cli struct {
	fs      fsys.FS
	cfgFile string
	debug   bool
	cfg     *config.Config
}

// newRootCmd builds the command tree. fs backs every file operation.
func newRootCmd(fs fsys.FS) *cobra.Command {
	c := &cli{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "fflagedit",
		Short: "Edit and lock a game client's settings file",
		Long: `fflagedit finds the client's ClientAppSettings.json, shows it
pretty-printed, saves edits back byte for byte, and toggles the
read-only attribute so the client cannot overwrite your flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// No Run here: the bare command shows help
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.config/fflagedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(guiCmd(c))
	rootCmd.AddCommand(tuiCmd(c))
	rootCmd.AddCommand(locateCmd(c))
	rootCmd.AddCommand(showCmd(c))
	rootCmd.AddCommand(saveCmd(c))
	rootCmd.AddCommand(lockCmd(c, "lock", true))
	rootCmd.AddCommand(lockCmd(c, "unlock", false))
	rootCmd.AddCommand(toggleCmd(c))
	rootCmd.AddCommand(statusCmd(c))

	return rootCmd
}

// loadConfig reads the configuration and sets up logging. An unreadable
// default config falls back to defaults; an explicit --config must load.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	log.SetOutput(cmd.ErrOrStderr())

	var err error
	if c.cfgFile != "" {
		c.cfg, err = config.LoadConfigFile(c.cfgFile)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", c.cfgFile, err)
		}
	} else {
		c.cfg, err = config.LoadConfig()
		if err != nil {
			log.WithError(err).Warn("using default settings")
			c.cfg = config.New()
		}
	}

	log.SetDebug(c.debug || c.cfg.Debug)
	log.Debugf("configuration loaded from %q", c.cfg.Path())
	return nil
}
