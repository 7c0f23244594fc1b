package formatter

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/oarkflow/ijson/span"
)

// DirectFormatter emits JSON from a sequence of calls without building a
// value tree. It does not check the call sequence: separators and member
// keys are the caller's job, and a wrong sequence yields invalid JSON.
//
// Output is buffered until Flush, which must be called once at the end.
type DirectFormatter struct {
	out    *output
	pretty bool

	level           int
	nlIndentPending bool
	suppressIndent  bool
}

func NewDirectFormatter(sink AppendFunc, pretty bool) *DirectFormatter {
	return &DirectFormatter{
		out:    &output{sink: sink, buf: make([]byte, 0, intermediateBufferSize)},
		pretty: pretty,
	}
}

// beginScalar handles the pending newline and indentation in front of a
// scalar value.
func (f *DirectFormatter) beginScalar() {
	if !f.pretty {
		return
	}
	if f.nlIndentPending {
		f.out.writeByte('\n')
	}
	f.nlIndentPending = false
	if !f.suppressIndent {
		f.out.writeIndent(f.level)
	}
}

func (f *DirectFormatter) open(bracket byte) {
	if f.pretty {
		if f.nlIndentPending {
			f.out.writeByte('\n')
		}
		if !f.suppressIndent {
			f.out.writeIndent(f.level)
		}
		f.level++
		f.out.writeByte(bracket)
		f.nlIndentPending = true
		f.suppressIndent = false
		return
	}
	f.out.writeByte(bracket)
}

func (f *DirectFormatter) close(bracket byte) {
	if f.pretty {
		if !f.nlIndentPending {
			f.out.writeByte('\n')
		}
		f.level--
		if !f.nlIndentPending {
			f.out.writeIndent(f.level)
		}
		f.out.writeByte(bracket)
		f.suppressIndent = false
		f.nlIndentPending = false
		return
	}
	f.out.writeByte(bracket)
}

func (f *DirectFormatter) OpenObject()  { f.open('{') }
func (f *DirectFormatter) CloseObject() { f.close('}') }
func (f *DirectFormatter) OpenArray()   { f.open('[') }
func (f *DirectFormatter) CloseArray()  { f.close(']') }

func (f *DirectFormatter) AppendString(s span.Span) {
	f.beginScalar()
	f.out.writeQuoted(s, false)
}

func (f *DirectFormatter) AppendStringOf(s string) { f.AppendString(span.Of(s)) }

func (f *DirectFormatter) AppendInt64(i int64) {
	f.beginScalar()
	f.out.writeInt64(i)
}

// AppendDouble writes whole doubles in integer form, and zero and subnormal
// values as 0.
func (f *DirectFormatter) AppendDouble(d float64) {
	if d == math.Trunc(d) && d >= math.MinInt64 && d < math.MaxInt64 {
		f.AppendInt64(int64(d))
		return
	}
	f.beginScalar()
	switch {
	case math.IsNaN(d) || math.IsInf(d, 0):
		f.out.fail(errors.WithDetailf(ErrUnsupportedValue, "double %v", d))
	case math.Abs(d) < 0x1p-1022:
		f.out.writeByte('0')
	default:
		var scratch [32]byte
		f.out.write(AppendDouble(scratch[:0], d))
	}
}

func (f *DirectFormatter) AppendBool(b bool) {
	f.beginScalar()
	if b {
		f.out.writeString("true")
	} else {
		f.out.writeString("false")
	}
}

func (f *DirectFormatter) AppendNull() {
	f.beginScalar()
	f.out.writeString("null")
}

// BeginObjectMember writes key and the colon; the member's value follows on
// the same line.
func (f *DirectFormatter) BeginObjectMember(key span.Span) {
	if f.pretty {
		if f.nlIndentPending {
			f.out.writeByte('\n')
		}
		f.nlIndentPending = false
		f.out.writeIndent(f.level)
	}
	f.out.writeQuoted(key, false)
	f.out.writeByte(':')
	f.suppressIndent = true
}

func (f *DirectFormatter) BeginObjectMemberOf(key string) { f.BeginObjectMember(span.Of(key)) }

func (f *DirectFormatter) AppendObjectMemberSeparator() { f.separator() }

func (f *DirectFormatter) AppendArrayMemberSeparator() { f.separator() }

func (f *DirectFormatter) separator() {
	if f.pretty {
		f.out.writeString(",\n")
		f.suppressIndent = false
		return
	}
	f.out.writeByte(',')
}

// Flush writes the buffered output, followed by a newline in pretty mode,
// and reports the first error seen since the formatter was created.
func (f *DirectFormatter) Flush() error {
	if f.pretty {
		f.out.writeByte('\n')
	}
	f.out.flushBuffer()
	return f.out.err
}
