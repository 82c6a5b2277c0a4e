package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
)

var configInitFlags struct {
	force  bool
	global bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write the default configuration as YAML to ./formwizard.yml, or to the
user config directory with --global.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.ProjectPath()
		if configInitFlags.global {
			path = config.GlobalPath()
		}
		if err := config.Write(path, config.Default(), configInitFlags.force); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlags.force, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitFlags.global, "global", false, "Write to the user config directory")
	configCmd.AddCommand(configInitCmd)
}
