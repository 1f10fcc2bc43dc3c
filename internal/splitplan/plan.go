// Package splitplan implements stage C of the splitter pipeline: grouping
// classified Items into output Buckets under a stable, reproducible naming
// scheme, and composing the shim.
package splitplan

import (
	"fmt"
	"sort"

	"splitc/internal/item"
	"splitc/internal/splitoptions"
)

// placement pairs an Item with its index in the original, source-ordered
// items slice, so a Bucket's contents can be sorted back into source order
// after the two-pass grouping (and the rare-singleton merge) has
// potentially appended them out of order.
type placement struct {
	idx int
	it  item.Item
}

func sortPlacements(p []placement) {
	sort.SliceStable(p, func(a, b int) bool { return p[a].idx < p[b].idx })
}

func itemsOf(p []placement) []item.Item {
	if len(p) == 0 {
		return nil
	}
	out := make([]item.Item, len(p))
	for i, pl := range p {
		out[i] = pl.it
	}
	return out
}

// Bucket is a named group of Items destined for one output file.
type Bucket struct {
	Category item.Category
	Filename string
	Items    []item.Item
	Prelude  string
}

// Shim is the distinguished bucket that retains the original filename.
// Its head/tail trivia come from stage A's Result, not from the Plan — the
// Emitter reads both when rendering the shim.
type Shim struct {
	Filename    string
	ModuleDecls []string // sibling filenames, in CategoryOrder
	Reexports   []item.Item
	// Items are the Items that stay resident in the shim itself — Imports,
	// Constants, and (when the stem is "main") the entry point — in
	// original source order, interleaved across those categories exactly
	// as they appeared in the file.
	Items []item.Item
}

// Plan is stage C's output: the non-shim Buckets plus the Shim.
type Plan struct {
	Buckets []*Bucket // in item.CategoryOrder
	Shim    Shim
}

// CollisionWarning is a non-fatal finding: a generated filename collided
// with an existing sibling and was renumbered.
type CollisionWarning struct {
	Category     item.Category
	OriginalName string
	ResolvedName string
}

// Build runs stage C: given the Classifier's annotated items (in source
// order), the original file's stem, and a listing of filenames that already
// exist in the target directory, produce a Plan.
func Build(items []item.Item, stem string, existingNames []string, opts splitoptions.Options) (Plan, []CollisionWarning) {
	byCategory := make(map[item.Category][]placement)
	nameOwner := make(map[string]item.Category) // type name -> category bucket it landed in

	// First pass: place every non-ImplBlock item into its category
	// bucket (or note it belongs in the shim), and record where each
	// named type landed so ImplBlock items can find it in pass two.
	for i, it := range items {
		if it.Kind == item.KindImplBlock {
			continue
		}
		cat := it.Category
		byCategory[cat] = append(byCategory[cat], placement{idx: i, it: it})
		if isNamedTypeCategory(cat) && it.Name != "" {
			nameOwner[it.Name] = cat
		}
	}

	// Second pass: co-locate ImplBlock items with their implementing
	// type's bucket, or fall back to the ImplBlock category bucket. This
	// pass necessarily runs after the first so nameOwner is fully
	// populated even when an impl block precedes its type's definition
	// in SourceText; each bucket is sorted back into source order below,
	// once both passes (and any rare-singleton merge) are done.
	for i, it := range items {
		if it.Kind != item.KindImplBlock {
			continue
		}
		cat, ok := nameOwner[it.Name]
		if !ok {
			cat = item.CategoryImplBlock
		}
		byCategory[cat] = append(byCategory[cat], placement{idx: i, it: it})
	}

	forcedToShim := mergeRareSingletons(byCategory)

	for cat := range byCategory {
		sortPlacements(byCategory[cat])
	}

	entryStem := stem == "main"

	// Shim-resident items keep their original interleaved order across
	// categories, the same as any other Bucket, so they're collected in
	// one pass over the source-ordered item list rather than via
	// byCategory, which only preserves order within a single category.
	var shimItems []item.Item
	for _, it := range items {
		if it.Kind == item.KindImplBlock {
			continue
		}
		if belongsInShim(it.Category, entryStem) || forcedToShim[it.Name] {
			shimItems = append(shimItems, it)
		}
	}

	var buckets []*Bucket
	var reexports []item.Item
	var moduleDecls []string
	var warnings []CollisionWarning
	usedNames := map[string]bool{}
	for _, n := range existingNames {
		usedNames[n] = true
	}

	for _, cat := range item.CategoryOrder {
		catItems := itemsOf(byCategory[cat])
		if len(catItems) == 0 {
			continue
		}

		if belongsInShim(cat, entryStem) {
			continue
		}

		suffix, ok := opts.Suffix(cat)
		if !ok {
			suffix = string(cat)
		}
		wanted := fmt.Sprintf("%s_%s", stem, suffix)
		final, warn := resolveCollision(wanted, cat, usedNames)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		usedNames[final] = true

		buckets = append(buckets, &Bucket{
			Category: cat,
			Filename: final,
			Items:    catItems,
			Prelude:  opts.PreludeHeader,
		})
		moduleDecls = append(moduleDecls, final)

		for _, it := range catItems {
			if shouldReexport(it, opts) {
				reexports = append(reexports, it)
			}
		}
	}

	return Plan{
		Buckets: buckets,
		Shim: Shim{
			Filename:    stem,
			ModuleDecls: moduleDecls,
			Reexports:   reexports,
			Items:       shimItems,
		},
	}, warnings
}

func isNamedTypeCategory(cat item.Category) bool {
	switch cat {
	case item.CategoryDataType, item.CategoryErrorType, item.CategoryConfiguration, item.CategoryTraitDef:
		return true
	default:
		return false
	}
}

// belongsInShim reports whether a category's items are kept in the shim
// rather than split into a sibling bucket: Imports and Constants always
// are, and EntryPoint is when the original stem is the conventional "main".
func belongsInShim(cat item.Category, entryStemIsMain bool) bool {
	switch cat {
	case item.CategoryImports, item.CategoryConstants:
		return true
	case item.CategoryEntryPoint:
		return entryStemIsMain
	default:
		return false
	}
}

func shouldReexport(it item.Item, opts splitoptions.Options) bool {
	if it.Name == "" {
		return false
	}
	if it.Visibility == item.VisibilityPublic {
		return true
	}
	return opts.ReexportPrivate
}

// rareFallbackOrder is the fixed fallback order for merging a
// singleton rarely-used-category bucket into the nearest non-empty one.
var rareFallbackOrder = []item.Category{
	item.CategoryDataType,
	item.CategoryBusinessLogic,
	item.CategoryHelper,
}

// mergeRareSingletons implements the fallback chain for a
// singleton Macros or Other bucket: merge into the first non-empty bucket in
// rareFallbackOrder, or, if none is non-empty, fall all the way back to the
// shim. It returns the names of items forced into the shim by the latter
// case, since the shim isn't itself a byCategory entry. The merged
// placement keeps its original idx, so the caller's post-merge sort still
// puts it in its correct source position within the fallback bucket rather
// than always last.
func mergeRareSingletons(byCategory map[item.Category][]placement) map[string]bool {
	forced := map[string]bool{}
	for _, rare := range []item.Category{item.CategoryMacros, item.CategoryOther} {
		items := byCategory[rare]
		if len(items) != 1 {
			continue
		}
		merged := false
		for _, fallback := range rareFallbackOrder {
			if len(byCategory[fallback]) > 0 {
				byCategory[fallback] = append(byCategory[fallback], items[0])
				delete(byCategory, rare)
				merged = true
				break
			}
		}
		if !merged {
			delete(byCategory, rare)
			forced[items[0].it.Name] = true
		}
	}
	return forced
}

func resolveCollision(wanted string, cat item.Category, used map[string]bool) (string, *CollisionWarning) {
	if !used[wanted] {
		return wanted, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", wanted, i)
		if !used[candidate] {
			return candidate, &CollisionWarning{Category: cat, OriginalName: wanted, ResolvedName: candidate}
		}
	}
}
