package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splitc/internal/splitconfig"
	"splitc/internal/splitoptions"
)

// configCmd groups the subcommands that manage .splitter.toml itself,
// as opposed to consuming it.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create .splitter.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .splitter.toml populated with the built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := splitconfig.Save(dir, splitoptions.Default()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), splitconfig.ConfigPath(dir))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
