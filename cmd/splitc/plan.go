package main

import (
	"github.com/spf13/cobra"
)

// planCmd is split --dry-run under its own name: callers that only want
// the plan, never the write, don't need to remember a flag.
var planCmd = &cobra.Command{
	Use:   "plan <file.rs>",
	Short: "Show the split plan for a Rust source file without writing files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		splitDryRun = true
		return runSplit(cmd, args)
	},
}

func init() {
	planCmd.Flags().StringVar(&splitFormat, "format", "human", "output format (json, human)")
	planCmd.Flags().BoolVar(&splitNoShim, "no-shim", false, "skip planning a shim file")
	planCmd.Flags().IntVar(&splitBlankGap, "blank-lines", -1, "blank lines between items in a bucket (default: from config)")
	rootCmd.AddCommand(planCmd)
}
