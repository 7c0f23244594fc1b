// Package encoder writes values to an io.Writer, one document per Encode.
package encoder

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/oarkflow/ijson/convert"
	"github.com/oarkflow/ijson/formatter"
	"github.com/oarkflow/ijson/value"
)

type Encoder struct {
	w    io.Writer
	buf  []byte
	opts formatter.Options
}

func New(w io.Writer) *Encoder {
	const initialCapacity = 4096
	return &Encoder{
		w:   w,
		buf: make([]byte, 0, initialCapacity),
	}
}

// SetPretty switches between compact and tab-indented output.
func (e *Encoder) SetPretty(pretty bool) { e.opts.Pretty = pretty }

// SetValidateUTF8 makes Encode reject strings that are not valid UTF-8.
func (e *Encoder) SetValidateUTF8(on bool) { e.opts.ValidateUTF8 = on }

// Encode writes v followed by a newline. v may be a value.Value, a
// *value.Value or any Go value convert.FromAny accepts.
func (e *Encoder) Encode(v any) error {
	var doc value.Value
	switch vv := v.(type) {
	case *value.Value:
		if vv != nil {
			return e.encode(vv)
		}
	default:
		var err error
		if doc, err = convert.FromAny(v); err != nil {
			return errors.Wrap(err, "encode")
		}
	}
	return e.encode(&doc)
}

func (e *Encoder) encode(v *value.Value) error {
	var err error
	e.buf, err = formatter.AppendWith(e.buf[:0], v, e.opts)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	if !e.opts.Pretty {
		e.buf = append(e.buf, '\n')
	}
	_, err = e.w.Write(e.buf)
	return err
}
