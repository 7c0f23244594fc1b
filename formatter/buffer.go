package formatter

import (
	"math"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// AppendFunc receives formatted output. p is only valid for the duration of
// the call. A non-nil error stops formatting and is returned to the caller.
type AppendFunc func(p []byte) error

const intermediateBufferSize = 16384

// output batches small appends into an intermediate buffer before handing
// them to the sink. The first error is sticky: once set every later append
// is a no-op.
type output struct {
	sink AppendFunc
	buf  []byte
	err  error
}

var outputPool = sync.Pool{
	New: func() any {
		return &output{buf: make([]byte, 0, intermediateBufferSize)}
	},
}

func getOutput(sink AppendFunc) *output {
	o := outputPool.Get().(*output)
	o.sink = sink
	o.buf = o.buf[:0]
	o.err = nil
	return o
}

func putOutput(o *output) {
	o.sink = nil
	outputPool.Put(o)
}

func (o *output) write(p []byte) {
	if o.err != nil {
		return
	}
	if len(o.buf)+len(p) < intermediateBufferSize {
		o.buf = append(o.buf, p...)
		return
	}
	o.flushBuffer()
	if o.err != nil {
		return
	}
	if len(p) < intermediateBufferSize {
		o.buf = append(o.buf, p...)
		return
	}
	o.err = o.sink(p)
}

func (o *output) writeString(s string) {
	if o.err != nil {
		return
	}
	if len(o.buf)+len(s) < intermediateBufferSize {
		o.buf = append(o.buf, s...)
		return
	}
	o.write([]byte(s))
}

func (o *output) writeByte(c byte) {
	if o.err != nil {
		return
	}
	if len(o.buf)+1 >= intermediateBufferSize {
		o.flushBuffer()
		if o.err != nil {
			return
		}
	}
	o.buf = append(o.buf, c)
}

func (o *output) flushBuffer() {
	if o.err != nil || len(o.buf) == 0 {
		return
	}
	o.err = o.sink(o.buf)
	o.buf = o.buf[:0]
}

func (o *output) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

const tabs = "\t\t\t\t\t\t\t\t"

func (o *output) writeIndent(level int) {
	for level > 0 {
		n := level
		if n > len(tabs) {
			n = len(tabs)
		}
		o.writeString(tabs[:n])
		level -= n
	}
}

const hex = "0123456789ABCDEF"

// writeQuoted writes s as a JSON string. Control bytes without a short
// escape become \u00XX; '/' and bytes >= 0x80 are written as is.
func (o *output) writeQuoted(s []byte, validateUTF8 bool) {
	if validateUTF8 && !utf8.Valid(s) {
		o.fail(errors.WithDetailf(ErrInvalidUTF8, "string %q", s))
		return
	}
	o.writeByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			o.write(s[start:i])
		}
		switch c {
		case '"':
			o.writeString(`\"`)
		case '\\':
			o.writeString(`\\`)
		case '\b':
			o.writeString(`\b`)
		case '\f':
			o.writeString(`\f`)
		case '\n':
			o.writeString(`\n`)
		case '\r':
			o.writeString(`\r`)
		case '\t':
			o.writeString(`\t`)
		default:
			o.write([]byte{'\\', 'u', '0', '0', hex[c>>4], hex[c&0xF]})
		}
		start = i + 1
	}
	if start < len(s) {
		o.write(s[start:])
	}
	o.writeByte('"')
}

func (o *output) writeInt64(i int64) {
	var scratch [24]byte
	o.write(strconv.AppendInt(scratch[:0], i, 10))
}

func (o *output) writeDouble(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		o.fail(errors.WithDetailf(ErrUnsupportedValue, "double %v", f))
		return
	}
	var scratch [32]byte
	o.write(AppendDouble(scratch[:0], f))
}

// AppendDouble appends the shortest text that reads back as exactly f and
// still parses as a double rather than an integer. f must be finite.
func AppendDouble(b []byte, f float64) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// e-07 => e-7
		if n := len(b); n-start >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b
	}
	for _, c := range b[start:] {
		if c == '.' {
			return b
		}
	}
	return append(b, '.', '0')
}
