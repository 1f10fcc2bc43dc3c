package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"splitc/internal/splitcache"
	"splitc/internal/splitcore"
	"splitc/internal/splitlog"
	"splitc/internal/version"
)

var (
	verbosity int
	quiet     bool
)

var rootCmd = &cobra.Command{
	Use:     "splitc",
	Short:   "splitc splits a single Rust source file into category-grouped siblings",
	Long:    `splitc parses a Rust source file into its top-level items, classifies each by role, and writes sibling files grouped by that role plus a shim that re-exports everything from the original path.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("splitc version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all log output")
}

func newLogger() *slog.Logger {
	level := splitlog.LevelFromVerbosity(verbosity, quiet)
	return splitlog.New(os.Stderr, level)
}

func init() {
	cobra.OnInitialize(func() {
		splitcore.SetLogger(newLogger())
		if dir, err := os.UserCacheDir(); err == nil {
			if c, err := splitcache.New(filepath.Join(dir, "splitc")); err == nil {
				splitcore.SetCache(c)
			}
		}
	})
}
