// Package splitparse implements stage A of the splitter pipeline: turning
// SourceText into an ordered list of top-level Items with trivia preserved.
//
// Unlike a hand-rolled brace-counting lexer, this parser is built on
// github.com/smacker/go-tree-sitter with the Rust grammar binding. The
// tree-sitter concrete syntax tree already gives exact top-level item
// boundaries, so brace/string/raw-identifier balancing falls out of the
// grammar instead of being re-implemented by hand. The parser still
// behaves as a top-level-only parser: it never
// descends into an item's body below the child it needs to read a name or
// visibility modifier from, and carries bodies out as raw byte spans.
package splitparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"splitc/internal/item"
	"splitc/internal/splitsource"
)

// ParseError is the fatal error class for malformed input: unbalanced
// delimiters, unterminated literals, or a malformed item header, all of
// which surface in the grammar as ERROR/MISSING nodes, plus the
// parser-local case of a trailing doc-comment or attribute with no item to
// attach to.
type ParseError struct {
	Message string
	Span     splitsource.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("splitparse: %s (byte %d-%d)", e.Message, e.Span.Start, e.Span.End)
}

// Result is stage A's output: the ordered Item list plus the two trivia
// spans that don't belong to any Item — the head (before the first item,
// e.g. a shebang line or file-level comment) and the tail (after the last
// item), both of which the shim reproduces verbatim.
type Result struct {
	Items       []item.Item
	HeadTrivia  splitsource.Span
	TailTrivia  splitsource.Span
}

var itemNodeKinds = map[string]item.Kind{
	"use_declaration":    item.KindUseImport,
	"mod_item":           item.KindModDecl,
	"function_item":      item.KindFunction,
	"struct_item":        item.KindStruct,
	"enum_item":          item.KindEnum,
	"trait_item":         item.KindTraitDef,
	"impl_item":          item.KindImplBlock,
	"type_item":          item.KindTypeAlias,
	"const_item":         item.KindConst,
	"static_item":        item.KindStatic,
	"macro_invocation":   item.KindMacroInvoc,
	"macro_definition":   item.KindMacroDef,
	"foreign_mod_item":   item.KindExternBlock,
}

// Parse runs stage A over src, producing an ordered Item list.
func Parse(ctx context.Context, src *splitsource.Text) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src.Bytes())
	if err != nil {
		return Result{}, &ParseError{Message: err.Error()}
	}
	root := tree.RootNode()
	if root.HasError() {
		span := findErrorSpan(root)
		return Result{}, &ParseError{Message: "unparseable input (unbalanced delimiter, unterminated literal, or malformed item header)", Span: span}
	}

	return walkTopLevel(root, src)
}

// findErrorSpan locates the first ERROR or MISSING node for diagnostic
// purposes. It returns a zero span if none is found even though HasError
// was true (can happen for certain MISSING tokens tree-sitter reports only
// at the parent).
func findErrorSpan(n *sitter.Node) splitsource.Span {
	if n.IsError() || n.IsMissing() {
		return splitsource.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.HasError() {
			return findErrorSpan(c)
		}
	}
	return splitsource.Span{}
}

func walkTopLevel(root *sitter.Node, src *splitsource.Text) (Result, error) {
	var items []item.Item

	pendingStart := -1
	var pendingEnd int
	var docLines []string
	var attrSpans []splitsource.Span

	firstConsumedStart := -1
	lastConsumedEnd := 0

	flushDangling := func() error {
		if pendingStart != -1 {
			return &ParseError{
				Message: "dangling doc-comment or attribute with no following item",
				Span:    splitsource.Span{Start: pendingStart, End: pendingEnd},
			}
		}
		return nil
	}

	n := int(root.NamedChildCount())
	for i := 0; i < n; i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		start := int(node.StartByte())
		end := int(node.EndByte())
		kindStr := node.Type()

		switch kindStr {
		case "line_comment", "block_comment":
			text := src.String(splitsource.Span{Start: start, End: end})
			if isDocComment(text) && adjacentToPending(src, pendingEnd, pendingStart, start) {
				if pendingStart == -1 {
					pendingStart = start
				}
				docLines = append(docLines, strings.TrimRight(stripDocMarker(text), "\r\n"))
				pendingEnd = end
				continue
			}
			// A non-doc comment, or a doc comment separated from the
			// pending block by a blank line, is not attached to any
			// Item and is not reproduced in the emitted output — only
			// Item bodies, their attributes, and their attached doc
			// comments travel forward through the pipeline.
			continue

		case "attribute_item":
			if pendingStart == -1 {
				pendingStart = start
			}
			attrSpans = append(attrSpans, splitsource.Span{Start: start, End: end})
			pendingEnd = end
			continue
		}

		// Anything else is an item-bearing node.
		bodyStart := start
		if pendingStart != -1 {
			bodyStart = pendingStart
		}
		it := buildItem(node, kindStr, src, bodyStart, end, docLines, attrSpans)
		items = append(items, it)

		if firstConsumedStart == -1 {
			firstConsumedStart = bodyStart
		}
		lastConsumedEnd = end

		pendingStart = -1
		pendingEnd = 0
		docLines = nil
		attrSpans = nil
	}

	if err := flushDangling(); err != nil {
		return Result{}, err
	}

	head := splitsource.Span{Start: 0, End: 0}
	if firstConsumedStart != -1 {
		head.End = firstConsumedStart
	} else {
		head.End = src.Len()
	}

	tail := splitsource.Span{Start: lastConsumedEnd, End: src.Len()}
	if firstConsumedStart == -1 {
		tail = splitsource.Span{Start: src.Len(), End: src.Len()}
	}

	return Result{Items: items, HeadTrivia: head, TailTrivia: tail}, nil
}

// adjacentToPending reports whether a doc comment starting at `start`
// continues the current pending block without an intervening blank line.
// With no pending block yet, any doc comment starts a new one.
func adjacentToPending(src *splitsource.Text, pendingEnd, pendingStart, start int) bool {
	if pendingStart == -1 {
		return true
	}
	gap := src.String(splitsource.Span{Start: pendingEnd, End: start})
	return strings.Count(gap, "\n") <= 1
}

func isDocComment(text string) bool {
	switch {
	case strings.HasPrefix(text, "///"), strings.HasPrefix(text, "//!"):
		return true
	case strings.HasPrefix(text, "/**"), strings.HasPrefix(text, "/*!"):
		return true
	default:
		return false
	}
}

func stripDocMarker(text string) string {
	switch {
	case strings.HasPrefix(text, "///"):
		return strings.TrimPrefix(text, "///")
	case strings.HasPrefix(text, "//!"):
		return strings.TrimPrefix(text, "//!")
	case strings.HasPrefix(text, "/**"), strings.HasPrefix(text, "/*!"):
		t := strings.TrimSuffix(strings.TrimPrefix(text, text[:3]), "*/")
		return t
	default:
		return text
	}
}

func buildItem(node *sitter.Node, kindStr string, src *splitsource.Text, bodyStart, end int, docLines []string, attrSpans []splitsource.Span) item.Item {
	kind, ok := itemNodeKinds[kindStr]
	if !ok {
		kind = item.KindOther
	}

	name := extractName(node, kindStr, src)
	vis := extractVisibility(node, src)
	aux := item.Auxiliary{}

	switch kind {
	case item.KindFunction:
		aux.IsMain = name == "main"
	case item.KindImplBlock:
		if traitNode := node.ChildByFieldName("trait"); traitNode != nil {
			aux.TraitName = lastIdentifier(traitNode, src)
		}
	}

	attrsCopy := make([]splitsource.Span, len(attrSpans))
	copy(attrsCopy, attrSpans)

	doc := ""
	if len(docLines) > 0 {
		doc = strings.Join(docLines, "\n")
	}

	return item.Item{
		Kind:       kind,
		Name:       name,
		Visibility: vis,
		Attributes: attrsCopy,
		Doc:        doc,
		BodySpan:   splitsource.Span{Start: bodyStart, End: end},
		Auxiliary:  aux,
	}
}

func extractName(node *sitter.Node, kindStr string, src *splitsource.Text) string {
	switch kindStr {
	case "function_item", "struct_item", "enum_item", "trait_item", "type_item", "mod_item", "macro_definition", "const_item", "static_item":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			return src.String(splitsource.Span{Start: int(nameNode.StartByte()), End: int(nameNode.EndByte())})
		}
		return ""
	case "impl_item":
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			return lastIdentifier(typeNode, src)
		}
		return ""
	case "macro_invocation":
		if macroNode := node.ChildByFieldName("macro"); macroNode != nil {
			return lastIdentifier(macroNode, src)
		}
		return ""
	default:
		return ""
	}
}

// lastIdentifier returns the text of the rightmost identifier/type_identifier
// token within node, which is enough to name a (possibly generic) impl
// target type or a macro path without understanding generics grammar.
func lastIdentifier(node *sitter.Node, src *splitsource.Text) string {
	// For a generic type such as Wrapper<T>, the name is the base type, not
	// the rightmost type argument.
	if node.Type() == "generic_type" {
		if base := node.ChildByFieldName("type"); base != nil {
			return lastIdentifier(base, src)
		}
	}
	if node.Type() == "identifier" || node.Type() == "type_identifier" {
		best := src.String(splitsource.Span{Start: int(node.StartByte()), End: int(node.EndByte())})
		// Descend into children first so a generic_type's outer span
		// doesn't shadow a more specific identifier found below.
		for i := 0; i < int(node.ChildCount()); i++ {
			if c := node.Child(i); c != nil {
				if sub := lastIdentifier(c, src); sub != "" {
					return sub
				}
			}
		}
		return best
	}
	var found string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if sub := lastIdentifier(c, src); sub != "" {
			found = sub
		}
	}
	return found
}

func extractVisibility(node *sitter.Node, src *splitsource.Text) item.Visibility {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "visibility_modifier" {
			text := src.String(splitsource.Span{Start: int(c.StartByte()), End: int(c.EndByte())})
			if text == "pub" {
				return item.VisibilityPublic
			}
			return item.VisibilityRestricted
		}
	}
	return item.VisibilityPrivate
}
