// Package ijson is a JSON library built around a zero-copy parser.
//
// Parse returns a value tree whose strings point into the input wherever the
// input needs no unescaping. Marshal, Unmarshal and the encoder and decoder
// factories go through swappable package-level hooks, so any of them can be
// replaced by another JSON implementation.
package ijson

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/oarkflow/ijson/marshaler"
	"github.com/oarkflow/ijson/parser"
	"github.com/oarkflow/ijson/unmarshaler"
	"github.com/oarkflow/ijson/value"
)

type Value = value.Value

func Marshal(data any) ([]byte, error) {
	return marshaler.Instance()(data)
}

// MarshalIndent always uses the built-in formatter, which indents with tabs.
func MarshalIndent(data any) ([]byte, error) {
	return marshaler.MarshalIndent(data)
}

func Unmarshal(data []byte, dst any) error {
	if reflect.ValueOf(dst).Kind() != reflect.Ptr {
		return errors.New("dst is not pointer type")
	}
	return unmarshaler.Instance()(data, dst)
}

// Parse parses data into a value tree. The tree aliases data, which must not
// be modified while the tree is in use.
func Parse(data []byte) (Value, error) {
	return parser.Parse(data)
}

// ParseString is Parse for a string input.
func ParseString(s string) (Value, error) {
	p := parser.New()
	if err := p.ParseString(s); err != nil {
		return value.Null(), err
	}
	return p.Take(), nil
}

func Valid(data []byte) bool {
	return parser.Valid(data)
}

func IsValid(s string) bool {
	return parser.New().ParseString(s) == nil
}

// MayBeComplete reports whether data looks like a whole document. It only
// looks at the first and last non-whitespace bytes.
func MayBeComplete(data []byte) bool {
	return parser.MayBeComplete(data)
}
