// Package splitemit implements stage D of the splitter pipeline: rendering
// each Bucket, and the shim, to file text.
package splitemit

import (
	"strings"

	"splitc/internal/item"
	"splitc/internal/splitparse"
	"splitc/internal/splitplan"
	"splitc/internal/splitsource"
)

// EmitError is the fatal class for an internal invariant violation — e.g.
// an Item's body_span exceeding the SourceText buffer.
type EmitError struct {
	Message string
}

func (e *EmitError) Error() string {
	return "splitemit: " + e.Message
}

// Bucket renders a single non-shim Bucket to file text: prelude header,
// one blank line, then each Item's attached doc/attributes and verbatim
// body, separated by exactly blankLines blank lines, ending with a single
// trailing newline.
func Bucket(src *splitsource.Text, b *splitplan.Bucket, blankLines int) (string, error) {
	var buf strings.Builder

	buf.WriteString(b.Prelude)
	buf.WriteString("\n")
	buf.WriteString("\n")

	if err := writeItems(&buf, src, b.Items, blankLines); err != nil {
		return "", err
	}

	return finalize(buf.String()), nil
}

// Shim renders the distinguished shim file: the original file's own
// leading trivia, mod declarations for every generated sibling (in
// item.CategoryOrder, already reflected in plan.ModuleDecls), use
// re-exports of every re-exportable Item, and the original tail trivia.
func Shim(src *splitsource.Text, parsed splitparse.Result, plan splitplan.Plan, blankLines int) (string, error) {
	var buf strings.Builder

	head := src.String(parsed.HeadTrivia)
	buf.WriteString(head)
	if head != "" && !strings.HasSuffix(head, "\n") {
		buf.WriteString("\n")
	}

	for _, mod := range plan.Shim.ModuleDecls {
		buf.WriteString("mod ")
		buf.WriteString(mod)
		buf.WriteString(";\n")
	}
	if len(plan.Shim.ModuleDecls) > 0 {
		buf.WriteString("\n")
	}

	for _, re := range plan.Shim.Reexports {
		buf.WriteString("pub use crate::")
		buf.WriteString(siblingModuleFor(re, plan))
		buf.WriteString("::")
		buf.WriteString(re.Name)
		buf.WriteString(";\n")
	}
	if len(plan.Shim.Reexports) > 0 {
		buf.WriteString("\n")
	}

	if err := writeItems(&buf, src, plan.Shim.Items, blankLines); err != nil {
		return "", err
	}

	tail := src.String(parsed.TailTrivia)
	buf.WriteString(tail)

	return finalize(buf.String()), nil
}

func siblingModuleFor(it item.Item, plan splitplan.Plan) string {
	for _, b := range plan.Buckets {
		for _, bi := range b.Items {
			if bi.Name == it.Name && bi.Kind == it.Kind {
				return b.Filename
			}
		}
	}
	return ""
}

func writeItems(buf *strings.Builder, src *splitsource.Text, items []item.Item, blankLines int) error {
	sep := strings.Repeat("\n", blankLines+1)
	for i, it := range items {
		if i > 0 {
			buf.WriteString(sep)
		}
		if it.BodySpan.End > src.Len() || it.BodySpan.Start < 0 || it.BodySpan.Start > it.BodySpan.End {
			return &EmitError{Message: "item body_span out of bounds"}
		}
		buf.WriteString(src.String(it.BodySpan))
	}
	if len(items) > 0 {
		buf.WriteString("\n")
	}
	return nil
}

// finalize enforces the file-format guarantee: exactly one trailing
// newline, never two, never zero (for non-empty content).
func finalize(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return "\n"
	}
	return s + "\n"
}
