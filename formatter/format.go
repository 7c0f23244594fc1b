// Package formatter turns value trees back into JSON text.
//
// Compact output contains no whitespace. Pretty output puts every member
// and element on its own line, indents with one tab per level, writes
// members as key:value without a space and ends with a newline.
package formatter

import (
	"github.com/cockroachdb/errors"

	"github.com/oarkflow/ijson/span"
	"github.com/oarkflow/ijson/value"
)

type Options struct {
	Pretty bool
	// ValidateUTF8 makes formatting fail with ErrInvalidUTF8 when a key or
	// string value is not valid UTF-8.
	ValidateUTF8 bool
}

// Format writes v to sink.
func Format(v *value.Value, sink AppendFunc, pretty bool) error {
	return FormatWith(v, sink, Options{Pretty: pretty})
}

func FormatWith(v *value.Value, sink AppendFunc, opts Options) error {
	o := getOutput(sink)
	defer putOutput(o)
	f := treeFormatter{out: o, validateUTF8: opts.ValidateUTF8}
	level := -1
	if opts.Pretty {
		level = 0
	}
	f.format(v, level)
	if opts.Pretty {
		o.writeByte('\n')
	}
	o.flushBuffer()
	return o.err
}

// Append appends the formatted v to dst.
func Append(dst []byte, v *value.Value, pretty bool) ([]byte, error) {
	return AppendWith(dst, v, Options{Pretty: pretty})
}

func AppendWith(dst []byte, v *value.Value, opts Options) ([]byte, error) {
	err := FormatWith(v, func(p []byte) error {
		dst = append(dst, p...)
		return nil
	}, opts)
	return dst, err
}

// FormatTo formats v into the fixed buffer dst and returns the number of
// bytes written. When the output does not fit it fails with
// ErrInsufficientRoom; the bytes written so far are left in dst.
func FormatTo(dst []byte, v *value.Value, pretty bool) (int, error) {
	n := 0
	err := Format(v, func(p []byte) error {
		if n+len(p) > len(dst) {
			return errors.Wrapf(ErrInsufficientRoom, "need %d more bytes", n+len(p)-len(dst))
		}
		n += copy(dst[n:], p)
		return nil
	}, pretty)
	return n, err
}

// treeFormatter walks a value tree. A negative level means compact output.
type treeFormatter struct {
	out          *output
	validateUTF8 bool
}

func (f *treeFormatter) format(v *value.Value, level int) {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		f.formatObject(obj, level)
	case value.KindArray:
		elems, _ := v.AsArray()
		f.formatArray(elems, level)
	case value.KindString:
		s, _ := v.AsString()
		f.out.writeQuoted(s, f.validateUTF8)
	case value.KindBoolean:
		if b, _ := v.AsBoolean(); b {
			f.out.writeString("true")
		} else {
			f.out.writeString("false")
		}
	case value.KindInt64:
		i, _ := v.AsInt64()
		f.out.writeInt64(i)
	case value.KindDouble:
		d, _ := v.AsDouble()
		f.out.writeDouble(d)
	default:
		f.out.writeString("null")
	}
}

func nested(level int) int {
	if level < 0 {
		return level
	}
	return level + 1
}

func (f *treeFormatter) formatArray(elems []value.Value, level int) {
	if len(elems) == 0 {
		f.out.writeString("[]")
		return
	}
	f.out.writeByte('[')
	for i := range elems {
		if i > 0 {
			f.out.writeByte(',')
		}
		if level >= 0 {
			f.out.writeByte('\n')
			f.out.writeIndent(level + 1)
		}
		f.format(&elems[i], nested(level))
		if f.out.err != nil {
			return
		}
	}
	if level >= 0 {
		f.out.writeByte('\n')
		f.out.writeIndent(level)
	}
	f.out.writeByte(']')
}

func (f *treeFormatter) formatObject(obj *value.Object, level int) {
	if obj.Len() == 0 {
		f.out.writeString("{}")
		return
	}
	f.out.writeByte('{')
	first := true
	obj.Ascend(func(key span.Span, member *value.Value) bool {
		if !first {
			f.out.writeByte(',')
		}
		first = false
		if level >= 0 {
			f.out.writeByte('\n')
			f.out.writeIndent(level + 1)
		}
		f.out.writeQuoted(key, f.validateUTF8)
		f.out.writeByte(':')
		f.format(member, nested(level))
		return f.out.err == nil
	})
	if level >= 0 {
		f.out.writeByte('\n')
		f.out.writeIndent(level)
	}
	f.out.writeByte('}')
}
