// Package parser turns a JSON text into a value.Value tree without copying
// string contents out of the input.
//
// Strings that contain no escapes are returned as views into the input
// buffer. Strings with escapes are decoded into the parser's arena. Either
// way the parsed document aliases memory the caller must keep unchanged for
// as long as the result is in use.
package parser

import (
	"github.com/oarkflow/ijson/arena"
	"github.com/oarkflow/ijson/value"
)

// DefaultMaxNestingLevels bounds object and array nesting when no explicit
// limit is given.
const DefaultMaxNestingLevels = 64

// Parser holds the result of the most recent successful parse together with
// the arena its decoded strings live in. A Parser is not safe for concurrent
// use.
type Parser struct {
	arena      *arena.Arena
	ownsArena  bool
	top        value.Value
	maxNesting int
}

type Option func(*Parser)

// WithMaxNestingLevels sets the nesting limit used by Parse. Negative values
// select DefaultMaxNestingLevels.
func WithMaxNestingLevels(n int) Option {
	return func(p *Parser) {
		if n < 0 {
			n = DefaultMaxNestingLevels
		}
		p.maxNesting = n
	}
}

// WithChunkSize sets the chunk size of the parser's own arena.
func WithChunkSize(size int) Option {
	return func(p *Parser) {
		p.arena = arena.New(size)
		p.ownsArena = true
	}
}

// WithArena makes the parser decode escaped strings into a caller-owned
// arena. The parser never clears an arena it does not own.
func WithArena(a *arena.Arena) Option {
	return func(p *Parser) {
		if a != nil {
			p.arena = a
			p.ownsArena = false
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{maxNesting: DefaultMaxNestingLevels}
	for _, opt := range opts {
		opt(p)
	}
	if p.arena == nil {
		p.arena = arena.New(arena.DefaultChunkSize)
		p.ownsArena = true
	}
	return p
}

// Parse parses data with the configured nesting limit.
func (p *Parser) Parse(data []byte) error {
	return p.ParseLevels(data, p.maxNesting)
}

// ParseString parses s without copying it.
func (p *Parser) ParseString(s string) error {
	return p.ParseLevels(stringBytes(s), p.maxNesting)
}

// ParseLevels parses data allowing at most maxNestingLevels nested objects
// and arrays. The previous result is discarded first, so after a failure
// Value reports null.
func (p *Parser) ParseLevels(data []byte, maxNestingLevels int) error {
	p.top.SetNull()
	if p.ownsArena {
		p.arena.Clear()
	}
	d := decoder{data: data, len: len(data), arena: p.arena}
	d.skipBOM()

	var top value.Value
	if err := d.decodeValue(&top, maxNestingLevels); err != nil {
		return err
	}
	d.skipWhitespace()
	if d.pos != d.len {
		return d.fail(ErrJunk, d.pos)
	}
	p.top.MoveFrom(&top)
	return nil
}

// Value returns the result of the last successful parse.
func (p *Parser) Value() *value.Value { return &p.top }

// Take moves the parse result out of the parser and leaves the parser's
// value null. The returned tree outlives later parses; it still aliases the
// input, which must not be modified while the tree is in use.
func (p *Parser) Take() value.Value {
	var v value.Value
	v.MoveFrom(&p.top)
	return v
}

func (p *Parser) Arena() *arena.Arena { return p.arena }

// Parse parses data with a throwaway parser and returns the resulting tree.
func Parse(data []byte, opts ...Option) (value.Value, error) {
	p := New(opts...)
	if err := p.Parse(data); err != nil {
		return value.Null(), err
	}
	return p.Take(), nil
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	p := New()
	return p.Parse(data) == nil
}
