package ijson

import (
	"github.com/oarkflow/ijson/unmarshaler"
)

type Unmarshaler = unmarshaler.Unmarshaler

func DefaultUnmarshaler() {
	unmarshaler.SetUnmarshaler(unmarshaler.Unmarshal)
}

func SetUnmarshaler(m Unmarshaler) {
	unmarshaler.SetUnmarshaler(m)
}
