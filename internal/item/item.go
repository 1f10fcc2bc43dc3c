// Package item defines the typed top-level syntactic unit the splitter
// pipeline carries from parsing through emission.
package item

import "splitc/internal/splitsource"

// Kind is the syntactic shape of a top-level item.
type Kind string

const (
	KindUseImport      Kind = "use_import"
	KindModDecl        Kind = "mod_decl"
	KindFunction       Kind = "function"
	KindStruct         Kind = "struct"
	KindEnum           Kind = "enum"
	KindTraitDef       Kind = "trait_def"
	KindImplBlock      Kind = "impl_block"
	KindTypeAlias      Kind = "type_alias"
	KindConst          Kind = "const"
	KindStatic         Kind = "static"
	KindMacroInvoc     Kind = "macro_invocation"
	KindMacroDef       Kind = "macro_def"
	KindExternBlock    Kind = "extern_block"
	KindOther          Kind = "other"
)

// Visibility is the declared visibility of an item.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
	VisibilityPrivate    Visibility = "private"
)

// Category is the closed set of semantic roles the Classifier assigns.
type Category string

const (
	CategoryEntryPoint    Category = "entry_point"
	CategoryErrorType     Category = "error_type"
	CategoryDataType      Category = "data_type"
	CategoryTraitDef      Category = "trait_def"
	CategoryImplBlock     Category = "impl_block"
	CategoryConfiguration Category = "configuration"
	CategoryBusinessLogic Category = "business_logic"
	CategoryHelper        Category = "helper"
	CategoryImports       Category = "imports"
	CategoryConstants     Category = "constants"
	CategoryMacros        Category = "macros"
	CategoryOther         Category = "other"
)

// CategoryOrder is the fixed, stable iteration order Buckets and shim
// mod-declarations follow. It exists so that every stage downstream of the
// Classifier sees the same deterministic order regardless of how items
// were discovered, satisfying the Emitter's determinism requirement.
var CategoryOrder = []Category{
	CategoryEntryPoint,
	CategoryErrorType,
	CategoryConfiguration,
	CategoryDataType,
	CategoryTraitDef,
	CategoryImplBlock,
	CategoryBusinessLogic,
	CategoryHelper,
	CategoryMacros,
	CategoryOther,
	CategoryImports,
	CategoryConstants,
}

// Auxiliary carries category-specific side information that doesn't fit the
// common Item shape: the trait name an impl block targets, and whether a
// function is the program entry point.
type Auxiliary struct {
	// TraitName is set for ImplBlock items of the form "impl Trait for T".
	TraitName string
	// IsMain is set for Function items literally named "main".
	IsMain bool
}

// Item is a single top-level declaration with its classification-relevant
// metadata and a verbatim byte span into the originating SourceText.
type Item struct {
	Kind       Kind
	Name       string
	Visibility Visibility
	Attributes []splitsource.Span
	Doc        string
	BodySpan   splitsource.Span
	Auxiliary  Auxiliary

	// Category is unset until the Classifier stage assigns it.
	Category Category
}

// WithCategory returns a copy of the item with Category set. The
// Classifier never mutates its input slice in place; it builds a new,
// annotated slice, keeping stage A's output immutable.
func (it Item) WithCategory(c Category) Item {
	it.Category = c
	return it
}
