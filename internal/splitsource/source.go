// Package splitsource holds the immutable source buffer the rest of the
// splitter pipeline carries Spans into.
package splitsource

import (
	"fmt"
	"unicode/utf8"
)

// Span is a half-open [Start, End) byte range into a Text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Text is the raw input, held for the lifetime of a single split run.
// Every Span produced during a run references this buffer by offset and
// must never outlive it.
type Text struct {
	bytes []byte
}

// New validates and wraps source bytes as a Text.
// UTF-8 byte-order marks are rejected here, per the file-format guarantee
// that encoding is UTF-8 without a BOM.
func New(src []byte) (*Text, error) {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		return nil, fmt.Errorf("splitsource: input begins with a UTF-8 byte-order mark")
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("splitsource: input is not valid UTF-8")
	}
	return &Text{bytes: src}, nil
}

// Bytes returns the full underlying buffer.
func (t *Text) Bytes() []byte {
	return t.bytes
}

// Len returns the number of bytes in the buffer.
func (t *Text) Len() int {
	return len(t.bytes)
}

// Slice returns the bytes covered by span. It panics if span falls outside
// the buffer — that indicates an EmitError-class invariant violation
// upstream, not a recoverable condition here.
func (t *Text) Slice(span Span) []byte {
	if span.Start < 0 || span.End > len(t.bytes) || span.Start > span.End {
		panic(fmt.Sprintf("splitsource: span %v out of bounds for %d-byte buffer", span, len(t.bytes)))
	}
	return t.bytes[span.Start:span.End]
}

// String returns the bytes covered by span as a string.
func (t *Text) String(span Span) string {
	return string(t.Slice(span))
}
