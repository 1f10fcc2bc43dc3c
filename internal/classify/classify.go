// Package classify implements stage B of the splitter pipeline: assigning
// each Item a Category from a closed set via ordered, first-match-wins
// rules — a numbered chain of predicates landing in a closed enum.
package classify

import (
	"strings"

	"splitc/internal/item"
)

// DocPrefixRules maps a case-insensitive doc-line prefix to the Category it
// signals for Function items, evaluated in order. Exposed so callers of
// Classify can pass their own prefixes instead of the "doc begins with Core"
// default. splitcore.Split always passes DefaultDocPrefixRules; the prefixes
// are not read from Options or from the config file.
type DocPrefixRules struct {
	BusinessLogicPrefixes []string
}

// DefaultDocPrefixRules reproduces the convention verbatim: a function
// whose doc's first non-empty line starts with "Core" is BusinessLogic.
func DefaultDocPrefixRules() DocPrefixRules {
	return DocPrefixRules{BusinessLogicPrefixes: []string{"core"}}
}

// Warning records an Item that fell through to Category Other — the
// non-fatal warning class.
type Warning struct {
	ItemIndex int
	ItemName  string
}

// Classify assigns a Category to every item in items, in order, returning a
// new annotated slice (stage A's output is never mutated in place) plus any
// ClassificationWarning-class fallthroughs.
func Classify(items []item.Item, rules DocPrefixRules) ([]item.Item, []Warning) {
	out := make([]item.Item, len(items))
	var warnings []Warning

	for i, it := range items {
		cat := classifyOne(it, rules)
		if cat == item.CategoryOther {
			warnings = append(warnings, Warning{ItemIndex: i, ItemName: it.Name})
		}
		out[i] = it.WithCategory(cat)
	}

	return out, warnings
}

// classifyOne applies each classification rule in order, first match wins.
func classifyOne(it item.Item, rules DocPrefixRules) item.Category {
	switch {
	case it.Kind == item.KindFunction && it.Auxiliary.IsMain:
		return item.CategoryEntryPoint
	case it.Kind == item.KindUseImport || it.Kind == item.KindModDecl:
		return item.CategoryImports
	case it.Kind == item.KindConst || it.Kind == item.KindStatic:
		return item.CategoryConstants
	case it.Kind == item.KindMacroDef || it.Kind == item.KindMacroInvoc:
		return item.CategoryMacros
	case it.Kind == item.KindTraitDef:
		return item.CategoryTraitDef
	case it.Kind == item.KindImplBlock:
		return item.CategoryImplBlock
	case (it.Kind == item.KindStruct || it.Kind == item.KindEnum) && isErrorLike(it):
		return item.CategoryErrorType
	case it.Kind == item.KindStruct && isConfigLike(it.Name):
		return item.CategoryConfiguration
	case it.Kind == item.KindStruct || it.Kind == item.KindEnum || it.Kind == item.KindTypeAlias:
		return item.CategoryDataType
	case it.Kind == item.KindFunction && startsWithBusinessLogicPrefix(it.Doc, rules):
		return item.CategoryBusinessLogic
	case it.Kind == item.KindFunction:
		return item.CategoryHelper
	default:
		return item.CategoryOther
	}
}

func isErrorLike(it item.Item) bool {
	if strings.HasSuffix(it.Name, "Error") {
		return true
	}
	return strings.Contains(strings.ToLower(firstNonEmptyLine(it.Doc)), "error")
}

func isConfigLike(name string) bool {
	return strings.Contains(name, "Config") || strings.Contains(name, "Settings")
}

// startsWithBusinessLogicPrefix checks the first non-empty doc line,
// case-insensitively and whitespace-normalized.
func startsWithBusinessLogicPrefix(doc string, rules DocPrefixRules) bool {
	line := firstNonEmptyLine(doc)
	if line == "" {
		return false
	}
	lower := strings.ToLower(line)
	for _, prefix := range rules.BusinessLogicPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func firstNonEmptyLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}
