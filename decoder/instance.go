package decoder

import (
	"io"
)

type IDecoder interface {
	Decode(any) error
}

type Factory func(io.Reader) IDecoder

var decoderFactory Factory

// Initialize the package with the document decoder by default.
func init() {
	decoderFactory = func(r io.Reader) IDecoder {
		return New(r)
	}
}

// SetDecoder allows you to set a custom decoder factory.
func SetDecoder(factory Factory) {
	decoderFactory = factory
}

// NewDecoder creates a new decoder using the currently set decoder factory.
func NewDecoder(r io.Reader) IDecoder {
	return decoderFactory(r)
}

func Instance() Factory {
	return decoderFactory
}
