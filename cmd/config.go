package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or print the compfinder configuration",
	Long: `Manage the configuration file read from the working directory
(.compfinderrc.json, .compfinderrc.yaml or .compfinderrc.yml).`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Save the effective configuration as a config file",
	Long: `Save the configuration in effect, defaults plus any config file, COMPFINDER_*
environment variables and flags, to path (default .compfinderrc.json).

A .yaml or .yml path is written as YAML, anything else as JSON. An existing
file is kept unless --force is given. When an owned file is configured the
units it lists stay in that file.

Examples:
  compfinder config init --sort bronze --own Ahri,Jinx
  compfinder config init .compfinderrc.yaml --data https://example.com/best.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := config.ConfigFiles[0]
		if len(args) == 1 {
			path = args[0]
		}
		cfg, err := loadConfig()
		if err == nil {
			err = initConfig(cfg, path, configForce, cmd.ErrOrStderr())
		}
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	Long:  `Print the configuration in effect after defaults, config file, environment and flags are merged.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err == nil {
			err = showConfig(cfg, cmd.OutOrStdout())
		}
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig writes cfg to path without the per-run settings
func initConfig(cfg *config.Config, path string, force bool, errOut io.Writer) error {
	saved := *cfg
	saved.Root = ""
	saved.Quiet = false
	saved.Verbose = false
	if saved.OwnedFile != "" {
		saved.Owned = nil
	}

	if err := config.SaveConfig(&saved, path, force); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(errOut, "Config written to %s\n", path)
	}
	return nil
}

func showConfig(cfg *config.Config, out io.Writer) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
