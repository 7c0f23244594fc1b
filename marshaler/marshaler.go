package marshaler

import (
	"github.com/oarkflow/ijson/convert"
	"github.com/oarkflow/ijson/formatter"
	"github.com/oarkflow/ijson/value"
)

type Marshaler func(any) ([]byte, error)

var (
	marshaler Marshaler
)

func init() {
	marshaler = Marshal
}

func SetMarshaler(m Marshaler) {
	marshaler = m
}

func Instance() Marshaler {
	return marshaler
}

// Marshal is the default Marshaler: compact output built through the value
// formatter.
func Marshal(v any) ([]byte, error) {
	return marshal(v, false)
}

// MarshalIndent is like Marshal with tab-indented output.
func MarshalIndent(v any) ([]byte, error) {
	return marshal(v, true)
}

func marshal(v any, pretty bool) ([]byte, error) {
	var doc value.Value
	switch vv := v.(type) {
	case *value.Value:
		if vv != nil {
			return formatter.Append(nil, vv, pretty)
		}
	default:
		var err error
		if doc, err = convert.FromAny(v); err != nil {
			return nil, err
		}
	}
	return formatter.Append(nil, &doc, pretty)
}
