// Package decoder reads JSON documents from an io.Reader.
//
// Each document is accumulated in memory and handed to the parser once the
// framing check says it may be complete. A parse that fails only because the
// input ended early makes the decoder read more and try again. Documents may
// follow each other directly or be separated by whitespace.
package decoder

import (
	"bytes"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/oarkflow/ijson/convert"
	"github.com/oarkflow/ijson/parser"
	"github.com/oarkflow/ijson/value"
)

const DefaultBufferSize = 4096

// ErrTooLarge is returned when a document grows beyond the configured
// maximum size before it parses.
var ErrTooLarge = errors.New("document too large")

type Decoder struct {
	r          io.Reader
	buf        []byte
	eof        bool
	bufferSize int
	maxBytes   int
	parser     *parser.Parser
	logger     *log.Logger
}

type Option func(*Decoder)

// WithBufferSize sets how many bytes are requested per read.
func WithBufferSize(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.bufferSize = n
		}
	}
}

// WithMaxBytes limits the size of a single document. Zero means no limit.
func WithMaxBytes(n int) Option {
	return func(d *Decoder) {
		d.maxBytes = n
	}
}

func WithParserOptions(opts ...parser.Option) Option {
	return func(d *Decoder) {
		d.parser = parser.New(opts...)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{r: r, bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(d)
	}
	if d.parser == nil {
		d.parser = parser.New()
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Parser returns the parser holding the most recently decoded document.
func (d *Decoder) Parser() *parser.Parser { return d.parser }

// Decode reads the next document and stores it in dst, which may be a
// *value.Value or any target convert.Decode accepts. It returns io.EOF when
// the stream holds nothing but whitespace.
func (d *Decoder) Decode(dst any) error {
	v, err := d.next()
	if err != nil {
		return err
	}
	return convert.Decode(v, dst)
}

func (d *Decoder) next() (*value.Value, error) {
	for {
		doc := bytes.TrimLeft(d.buf, " \t\r\n")
		switch {
		case len(doc) == 0 && d.eof:
			d.buf = nil
			return nil, io.EOF
		case len(doc) > 0 && (d.eof || framed(doc)):
			v, err := d.tryParse()
			if err == nil || d.eof || !parser.IsTruncation(err) {
				return v, err
			}
		}
		if d.maxBytes > 0 && len(d.buf) > d.maxBytes {
			return nil, errors.Wrapf(ErrTooLarge, "%d bytes buffered, limit %d", len(d.buf), d.maxBytes)
		}
		if err := d.fill(); err != nil {
			return nil, err
		}
	}
}

// framed reports whether doc is worth parsing before the end of the stream.
// Bare numbers and literals are only parsed at EOF since a later read may
// still extend them.
func framed(doc []byte) bool {
	switch doc[0] {
	case '{', '[', '"':
		return parser.MayBeComplete(doc)
	}
	return false
}

func (d *Decoder) fill() error {
	if len(d.buf) == cap(d.buf) {
		grown := make([]byte, len(d.buf), 2*cap(d.buf)+d.bufferSize)
		copy(grown, d.buf)
		d.buf = grown
	}
	n, err := d.r.Read(d.buf[len(d.buf):cap(d.buf)])
	d.buf = d.buf[:len(d.buf)+n]
	d.logger.Debug("read", "bytes", n, "buffered", len(d.buf))
	if err == io.EOF {
		d.eof = true
		return nil
	}
	return err
}

// tryParse parses the buffered bytes. When the buffer holds one complete
// document followed by more input, the document is returned and the rest is
// kept for the next call.
func (d *Decoder) tryParse() (*value.Value, error) {
	err := d.parser.Parse(d.buf)
	if err == nil {
		d.logger.Debug("parsed document", "bytes", len(d.buf))
		d.buf = nil
		return d.parser.Value(), nil
	}
	d.logger.Debug("parse attempt failed", "bytes", len(d.buf), "err", err)

	off := parser.Offset(err)
	if !errors.Is(err, parser.ErrJunk) || off <= 0 || !delimited(d.buf[off-1]) {
		return nil, err
	}
	// Only a document that ends right before the junk may be split off.
	if perr := d.parser.Parse(d.buf[:off]); perr != nil {
		return nil, err
	}
	d.logger.Debug("parsed document", "bytes", off, "remaining", len(d.buf)-off)
	// The decoded tree aliases the old buffer, so the remainder moves to a
	// fresh one.
	d.buf = append(make([]byte, 0, len(d.buf)-off+d.bufferSize), d.buf[off:]...)
	return d.parser.Value(), nil
}

// delimited reports whether a document ending in c is separated from what
// follows. A bare literal or number directly followed by other bytes, as in
// truex, is one malformed token rather than two documents.
func delimited(c byte) bool {
	switch c {
	case '}', ']', '"', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
