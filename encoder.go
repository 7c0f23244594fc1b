package ijson

import (
	"io"

	"github.com/oarkflow/ijson/encoder"
)

type IEncoder = encoder.IEncoder

type EncoderFactory = encoder.Factory

// DefaultEncoder restores the built-in formatter-backed encoder.
func DefaultEncoder() {
	encoder.SetEncoder(func(w io.Writer) IEncoder {
		return encoder.New(w)
	})
}

// SetEncoder allows you to set a custom encoder factory.
func SetEncoder(factory EncoderFactory) {
	encoder.SetEncoder(factory)
}

// NewEncoder creates a new encoder using the currently set encoder factory.
func NewEncoder(w io.Writer) IEncoder {
	return encoder.NewEncoder(w)
}
