package parser

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"

	"github.com/oarkflow/ijson/arena"
	"github.com/oarkflow/ijson/span"
	"github.com/oarkflow/ijson/value"
)

// b2s converts []byte to string without extra copy.
func b2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

type decoder struct {
	data  []byte
	pos   int
	len   int
	arena *arena.Arena
}

func (d *decoder) fail(err error, offset int) error {
	return &SyntaxError{Err: err, Offset: offset}
}

func (d *decoder) skipBOM() {
	if d.len >= 3 && d.data[0] == 0xEF && d.data[1] == 0xBB && d.data[2] == 0xBF {
		d.pos = 3
	}
}

func (d *decoder) skipWhitespace() {
	for d.pos < d.len {
		switch d.data[d.pos] {
		case ' ', '\n', '\r', '\t':
			d.pos++
		default:
			return
		}
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// isValueEnd reports whether c may directly follow a scalar.
func isValueEnd(c byte) bool {
	return isWhitespace(c) || c == ',' || c == '}' || c == ']'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (d *decoder) decodeValue(v *value.Value, levels int) error {
	d.skipWhitespace()
	if d.pos >= d.len {
		return d.fail(ErrExpectedValue, d.pos)
	}
	switch d.data[d.pos] {
	case '{':
		if levels <= 0 {
			return d.fail(ErrTooManyLevels, d.pos)
		}
		return d.decodeObject(v, levels-1)
	case '[':
		if levels <= 0 {
			return d.fail(ErrTooManyLevels, d.pos)
		}
		return d.decodeArray(v, levels-1)
	case '"':
		s, err := d.decodeString()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case 't':
		if err := d.decodeLiteral("true"); err != nil {
			return err
		}
		v.SetBool(true)
		return nil
	case 'f':
		if err := d.decodeLiteral("false"); err != nil {
			return err
		}
		v.SetBool(false)
		return nil
	case 'n':
		if err := d.decodeLiteral("null"); err != nil {
			return err
		}
		v.SetNull()
		return nil
	default:
		return d.decodeNumber(v)
	}
}

func (d *decoder) decodeObject(v *value.Value, levels int) error {
	obj := value.NewObject()
	d.pos++ // skip '{'
	first := true
	for {
		d.skipWhitespace()
		if d.pos >= d.len {
			return d.fail(ErrUnterminatedObject, d.pos)
		}
		if d.data[d.pos] == '}' && first {
			d.pos++
			break
		}
		if !first {
			switch d.data[d.pos] {
			case '}':
				d.pos++
				v.SetObject(obj)
				return nil
			case ',':
				d.pos++
			default:
				return d.fail(ErrJunk, d.pos)
			}
			d.skipWhitespace()
			if d.pos >= d.len {
				return d.fail(ErrUnterminatedObject, d.pos)
			}
		}
		first = false
		if d.data[d.pos] != '"' {
			return d.fail(ErrExpectedString, d.pos)
		}
		key, err := d.decodeString()
		if err != nil {
			return err
		}
		d.skipWhitespace()
		if d.pos >= d.len {
			return d.fail(ErrUnterminatedObject, d.pos)
		}
		if d.data[d.pos] != ':' {
			return d.fail(ErrExpectedColon, d.pos)
		}
		d.pos++ // skip ':'
		d.skipWhitespace()
		if d.pos >= d.len {
			return d.fail(ErrUnterminatedObject, d.pos)
		}
		// A repeated key reuses its slot; the later value wins.
		if err := d.decodeValue(obj.Slot(key), levels); err != nil {
			return err
		}
	}
	v.SetObject(obj)
	return nil
}

func (d *decoder) decodeArray(v *value.Value, levels int) error {
	var elems []value.Value
	d.pos++ // skip '['
	first := true
	for {
		d.skipWhitespace()
		if d.pos >= d.len {
			return d.fail(ErrUnterminatedArray, d.pos)
		}
		if d.data[d.pos] == ']' && first {
			d.pos++
			break
		}
		if !first {
			switch d.data[d.pos] {
			case ']':
				d.pos++
				v.SetArray(elems)
				return nil
			case ',':
				d.pos++
			default:
				return d.fail(ErrJunk, d.pos)
			}
			d.skipWhitespace()
			if d.pos >= d.len {
				return d.fail(ErrUnterminatedArray, d.pos)
			}
		}
		first = false
		elems = append(elems, value.Value{})
		if err := d.decodeValue(&elems[len(elems)-1], levels); err != nil {
			return err
		}
	}
	v.SetArray(elems)
	return nil
}

func (d *decoder) decodeLiteral(lit string) error {
	start := d.pos
	end := start + len(lit)
	if end > d.len || b2s(d.data[start:end]) != lit {
		return d.fail(ErrJunk, start)
	}
	if end < d.len && !isValueEnd(d.data[end]) {
		return d.fail(ErrJunk, end)
	}
	d.pos = end
	return nil
}

// decodeString scans the string starting at the opening quote. Strings
// without escapes are returned as views into the input; the rest are
// decoded into the arena.
func (d *decoder) decodeString() (span.Span, error) {
	start := d.pos
	p := start + 1
	escaped := false
	for p < d.len {
		c := d.data[p]
		if c == '"' {
			break
		}
		if c < 0x20 {
			return nil, d.fail(ErrMissingEscape, p)
		}
		p++
		if c == '\\' {
			escaped = true
			p++
		}
	}
	if p >= d.len {
		return nil, d.fail(ErrUnterminatedString, start)
	}
	raw := d.data[start+1 : p : p]
	d.pos = p + 1
	if !escaped {
		return span.New(raw), nil
	}
	return d.unescape(raw, start+1)
}

// unescape decodes raw into arena memory. base is the offset of raw[0] in
// the input. raw never ends in an unpaired backslash.
func (d *decoder) unescape(raw []byte, base int) (span.Span, error) {
	dst := d.arena.Alloc(len(raw), 1)
	n := 0
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			dst[n] = c
			n++
			i++
			continue
		}
		switch raw[i+1] {
		case '"', '\\', '/':
			dst[n] = raw[i+1]
		case 'b':
			dst[n] = '\b'
		case 'f':
			dst[n] = '\f'
		case 'n':
			dst[n] = '\n'
		case 'r':
			dst[n] = '\r'
		case 't':
			dst[n] = '\t'
		case 'u':
			r, size, ok := unicodeEscape(raw, i)
			if !ok {
				return nil, d.fail(ErrInvalidEscape, base+i)
			}
			n += utf8.EncodeRune(dst[n:], r)
			i += size
			continue
		default:
			return nil, d.fail(ErrInvalidEscape, base+i)
		}
		n++
		i += 2
	}
	return span.Span(dst[:n:n]), nil
}

// unicodeEscape decodes the \uXXXX escape at raw[i], joining a surrogate
// pair when a high surrogate is directly followed by a low one. It returns
// the code point and the number of input bytes consumed.
func unicodeEscape(raw []byte, i int) (rune, int, bool) {
	cp, ok := hex4(raw, i+2)
	if !ok {
		return 0, 0, false
	}
	switch {
	case cp >= 0xD800 && cp < 0xDC00:
		if i+12 <= len(raw) && raw[i+6] == '\\' && raw[i+7] == 'u' {
			lo, ok := hex4(raw, i+8)
			if ok && lo >= 0xDC00 && lo < 0xE000 {
				return utf16.DecodeRune(cp, lo), 12, true
			}
		}
		return 0, 0, false
	case cp >= 0xDC00 && cp < 0xE000:
		return 0, 0, false
	}
	return cp, 6, true
}

func hex4(b []byte, at int) (rune, bool) {
	if at+4 > len(b) {
		return 0, false
	}
	var r rune
	for _, c := range b[at : at+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return r, true
}

// decodeNumber scans the longest run of number characters and converts it.
// Anything the strict grammar rejects is reported at the end of the run;
// conversion failures are reported at its start.
func (d *decoder) decodeNumber(v *value.Value) error {
	start := d.pos
	p := start
	floatChars := 0
	dot := -1
scan:
	for p < d.len {
		switch c := d.data[p]; {
		case isDigit(c), c == '+', c == '-':
		case c == '.':
			floatChars++
			dot = p
		case c == 'e', c == 'E':
			floatChars++
		default:
			break scan
		}
		p++
	}
	if p == start || (p < d.len && !isValueEnd(d.data[p])) {
		return d.fail(ErrJunk, start)
	}
	if p == start+1 && isDigit(d.data[start]) {
		v.SetInt64(int64(d.data[start] - '0'))
		d.pos = p
		return nil
	}

	lit := d.data[start:p]
	if lit[0] == '+' {
		return d.fail(ErrUnparseableNumber, p)
	}
	mantissa := lit
	if mantissa[0] == '-' {
		mantissa = mantissa[1:]
	}
	if len(mantissa) > 0 && mantissa[0] == '.' {
		return d.fail(ErrUnparseableNumber, p)
	}
	if len(mantissa) >= 2 && mantissa[0] == '0' {
		switch mantissa[1] {
		case '.', 'e', 'E':
		default:
			return d.fail(ErrUnparseableNumber, p)
		}
	}
	if dot >= 0 {
		if dot == start || !isDigit(d.data[dot-1]) || dot+1 == p || !isDigit(d.data[dot+1]) {
			return d.fail(ErrUnparseableNumber, p)
		}
	}

	if floatChars > 0 {
		if floatChars > 2 {
			return d.fail(ErrUnparseableNumber, start)
		}
		f, err := strconv.ParseFloat(b2s(lit), 64)
		if err != nil {
			return d.fail(ErrUnparseableNumber, start)
		}
		v.SetDouble(f)
	} else {
		i, err := strconv.ParseInt(b2s(lit), 10, 64)
		if err != nil {
			return d.fail(ErrUnparseableNumber, start)
		}
		v.SetInt64(i)
	}
	d.pos = p
	return nil
}
