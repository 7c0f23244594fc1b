package ijson

import (
	"github.com/oarkflow/ijson/marshaler"
)

type Marshaler = marshaler.Marshaler

func DefaultMarshaler() {
	marshaler.SetMarshaler(marshaler.Marshal)
}

func SetMarshaler(m Marshaler) {
	marshaler.SetMarshaler(m)
}
