// Package splitoptions defines the closed configuration surface for a
// split run, shared by the Planner, the Emitter, and the viper-backed
// loader in internal/splitconfig.
package splitoptions

import "splitc/internal/item"

// Options is the closed configuration set for a split run.
type Options struct {
	// PreludeHeader is the per-sibling header line, verbatim.
	PreludeHeader string `json:"preludeHeader" mapstructure:"preludeHeader"`

	// BlankLinesBetweenItems is the exact number of blank lines the
	// Emitter places between successive Items in a bucket.
	BlankLinesBetweenItems int `json:"blankLinesBetweenItems" mapstructure:"blankLinesBetweenItems"`

	// EmitShim controls whether the original filename is emitted at all.
	EmitShim bool `json:"emitShim" mapstructure:"emitShim"`

	// StemOverrides overrides the default Category -> filename-suffix
	// table.
	StemOverrides map[item.Category]string `json:"stemOverrides" mapstructure:"stemOverrides"`

	// ReexportPrivate, if true, makes the shim re-export Private items
	// too (default: false — only Public items are re-exported).
	ReexportPrivate bool `json:"reexportPrivate" mapstructure:"reexportPrivate"`
}

// DefaultSuffixes is the stable Category -> filename-suffix mapping the
// filename scheme uses.
var DefaultSuffixes = map[item.Category]string{
	item.CategoryDataType:      "types",
	item.CategoryErrorType:     "errors",
	item.CategoryConfiguration: "config",
	item.CategoryTraitDef:      "traits",
	item.CategoryBusinessLogic: "logic",
	item.CategoryHelper:        "helpers",
	item.CategoryImplBlock:     "impls",
	item.CategoryMacros:        "macros",
	item.CategoryEntryPoint:    "entry",
}

// Default returns the built-in default Options.
func Default() Options {
	return Options{
		PreludeHeader:          "use crate::prelude::*;",
		BlankLinesBetweenItems: 2,
		EmitShim:               true,
		StemOverrides:          map[item.Category]string{},
		ReexportPrivate:        false,
	}
}

// Suffix resolves the filename suffix for a Category, honoring
// StemOverrides before falling back to DefaultSuffixes.
func (o Options) Suffix(c item.Category) (string, bool) {
	if s, ok := o.StemOverrides[c]; ok {
		return s, true
	}
	s, ok := DefaultSuffixes[c]
	return s, ok
}
