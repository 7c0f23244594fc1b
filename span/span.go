// Package span provides a non-owning view over a contiguous byte range.
//
// A Span never owns the bytes it points at. Spans produced by the parser
// alias either the caller's input buffer or the parser's arena, so the
// viewed bytes must not be modified while the span is in use.
package span

import (
	"bytes"
	"unsafe"
)

// Span is a view over a byte range.
type Span []byte

// New returns a view of b.
func New(b []byte) Span {
	return Span(b)
}

// Of returns a view of s without copying.
func Of(s string) Span {
	if len(s) == 0 {
		return nil
	}
	return Span(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func (s Span) Len() int { return len(s) }

func (s Span) Empty() bool { return len(s) == 0 }

func (s Span) Bytes() []byte { return []byte(s) }

// String returns a copy of the viewed bytes.
func (s Span) String() string { return string(s) }

// UnsafeString returns the viewed bytes as a string without copying.
// The string is only valid as long as the viewed bytes are not modified.
func (s Span) UnsafeString() string {
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// Substr returns the view starting at offset with at most count bytes.
// count is clamped to the remaining length.
func (s Span) Substr(offset, count int) Span {
	rest := len(s) - offset
	if count < 0 || count > rest {
		count = rest
	}
	return s[offset : offset+count : offset+count]
}

// Compare orders spans byte-wise; when one is a prefix of the other the
// shorter one sorts first.
func (s Span) Compare(o Span) int {
	return bytes.Compare(s, o)
}

func (s Span) Equal(o Span) bool { return bytes.Equal(s, o) }

func (s Span) Less(o Span) bool { return bytes.Compare(s, o) < 0 }

func (s Span) EqualString(str string) bool { return s.UnsafeString() == str }

// Within reports whether the viewed bytes lie inside buf.
func (s Span) Within(buf []byte) bool {
	if len(s) == 0 || len(buf) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	hi := lo + uintptr(len(buf))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return p >= lo && p+uintptr(len(s)) <= hi
}

// Overlaps reports whether any viewed byte lies inside buf.
func (s Span) Overlaps(buf []byte) bool {
	if len(s) == 0 || len(buf) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	hi := lo + uintptr(len(buf))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return p < hi && p+uintptr(len(s)) > lo
}
