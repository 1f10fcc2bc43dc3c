package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"splitc/internal/splitconfig"
	"splitc/internal/splitcore"
	"splitc/internal/splitoutput"
	"splitc/internal/splitpaths"
)

var (
	splitFormat   string
	splitDryRun   bool
	splitNoShim   bool
	splitBlankGap int
)

var splitCmd = &cobra.Command{
	Use:   "split <file.rs>",
	Short: "Split a Rust source file into category-grouped siblings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&splitFormat, "format", "human", "output format (json, human)")
	splitCmd.Flags().BoolVar(&splitDryRun, "dry-run", false, "report the plan without writing files")
	splitCmd.Flags().BoolVar(&splitNoShim, "no-shim", false, "skip emitting the shim file")
	splitCmd.Flags().IntVar(&splitBlankGap, "blank-lines", -1, "blank lines between items in a bucket (default: from config)")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir := filepath.Dir(path)
	stem := splitpaths.Stem(path)

	var emitShim *bool
	if cmd.Flags().Changed("no-shim") {
		v := !splitNoShim
		emitShim = &v
	}
	var blankLines *int
	if splitBlankGap >= 0 {
		blankLines = &splitBlankGap
	}

	opts, err := splitconfig.Load(dir, splitconfig.FlagOverrides{
		EmitShim:               emitShim,
		BlankLinesBetweenItems: blankLines,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	existing, err := splitpaths.ExistingNames(dir, path)
	if err != nil {
		return fmt.Errorf("listing siblings of %s: %w", dir, err)
	}

	result, err := splitcore.Split(context.Background(), source, stem, existing, opts)
	if err != nil {
		return err
	}

	report := &splitoutput.Report{
		Stem:        stem,
		Files:       result.Files,
		Diagnostics: result.Diagnostics,
	}

	if !splitDryRun {
		for _, f := range result.Files {
			outPath := filepath.Join(dir, f.Filename)
			if err := os.WriteFile(outPath, []byte(f.Content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
		}
	}

	out, err := FormatResponse(report, OutputFormat(splitFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)

	return nil
}
