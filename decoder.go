package ijson

import (
	"io"

	"github.com/oarkflow/ijson/decoder"
)

type IDecoder = decoder.IDecoder

type DecoderFactory = decoder.Factory

// DefaultDecoder restores the built-in document decoder.
func DefaultDecoder() {
	decoder.SetDecoder(func(r io.Reader) IDecoder {
		return decoder.New(r)
	})
}

// SetDecoder allows you to set a custom decoder factory.
func SetDecoder(factory DecoderFactory) {
	decoder.SetDecoder(factory)
}

// NewDecoder creates a new decoder using the currently set decoder factory.
func NewDecoder(r io.Reader) IDecoder {
	return decoder.NewDecoder(r)
}
