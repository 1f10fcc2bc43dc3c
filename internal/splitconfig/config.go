// Package splitconfig loads splitoptions.Options from .splitter.toml or
// .splitter.yaml using viper: a defaults layer underneath, file values on
// top of that, then environment variables, then explicit flags — last
// writer wins.
package splitconfig

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"splitc/internal/item"
	"splitc/internal/splitoptions"
)

// FlagOverrides carries CLI-flag values that, when set, take precedence over
// env vars, the config file, and the built-in defaults.
type FlagOverrides struct {
	PreludeHeader          *string
	BlankLinesBetweenItems *int
	EmitShim               *bool
	ReexportPrivate        *bool
}

// Load reads .splitter.(toml|yaml|yml) from dir, falling back to
// splitoptions.Default() if no config file is present, then layers
// SPLITTER_-prefixed environment variables and flags on top.
func Load(dir string, flags FlagOverrides) (splitoptions.Options, error) {
	v := viper.New()

	def := splitoptions.Default()
	v.SetDefault("preludeHeader", def.PreludeHeader)
	v.SetDefault("blankLinesBetweenItems", def.BlankLinesBetweenItems)
	v.SetDefault("emitShim", def.EmitShim)
	v.SetDefault("reexportPrivate", def.ReexportPrivate)

	v.SetConfigName(".splitter")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("SPLITTER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return splitoptions.Options{}, err
		}
	}

	if flags.PreludeHeader != nil {
		v.Set("preludeHeader", *flags.PreludeHeader)
	}
	if flags.BlankLinesBetweenItems != nil {
		v.Set("blankLinesBetweenItems", *flags.BlankLinesBetweenItems)
	}
	if flags.EmitShim != nil {
		v.Set("emitShim", *flags.EmitShim)
	}
	if flags.ReexportPrivate != nil {
		v.Set("reexportPrivate", *flags.ReexportPrivate)
	}

	var opts splitoptions.Options
	if err := v.Unmarshal(&opts); err != nil {
		return splitoptions.Options{}, err
	}
	if opts.StemOverrides == nil {
		opts.StemOverrides = map[item.Category]string{}
	}

	return opts, nil
}

// ConfigPath returns the path Load reads from, for diagnostics.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ".splitter.toml")
}

// configDoc mirrors splitoptions.Options' scalar fields for TOML marshaling.
// StemOverrides has no counterpart here, so Save never writes it.
type configDoc struct {
	PreludeHeader          string `toml:"preludeHeader"`
	BlankLinesBetweenItems int    `toml:"blankLinesBetweenItems"`
	EmitShim               bool   `toml:"emitShim"`
	ReexportPrivate        bool   `toml:"reexportPrivate"`
}

// Save writes opts to dir's .splitter.toml, creating or overwriting it.
// `splitc config init` uses this to drop a starting-point config file that
// `splitc split` and `splitc plan` will then pick up via Load.
func Save(dir string, opts splitoptions.Options) error {
	f, err := os.Create(ConfigPath(dir))
	if err != nil {
		return err
	}
	defer f.Close()

	doc := configDoc{
		PreludeHeader:          opts.PreludeHeader,
		BlankLinesBetweenItems: opts.BlankLinesBetweenItems,
		EmitShim:               opts.EmitShim,
		ReexportPrivate:        opts.ReexportPrivate,
	}
	return toml.NewEncoder(f).Encode(doc)
}
