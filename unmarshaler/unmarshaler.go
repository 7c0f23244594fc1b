package unmarshaler

import (
	"sync"

	"github.com/oarkflow/ijson/convert"
	"github.com/oarkflow/ijson/parser"
)

type Unmarshaler func([]byte, any) error

var (
	unmarshaler Unmarshaler
)

func init() {
	unmarshaler = Unmarshal
}

func SetUnmarshaler(m Unmarshaler) {
	unmarshaler = m
}

func Instance() Unmarshaler {
	return unmarshaler
}

var parserPool = sync.Pool{
	New: func() any { return parser.New() },
}

// Unmarshal is the default Unmarshaler. It parses data with a pooled parser
// and decodes the result into dst.
func Unmarshal(data []byte, dst any) error {
	p := parserPool.Get().(*parser.Parser)
	defer parserPool.Put(p)
	if err := p.Parse(data); err != nil {
		return err
	}
	return convert.Decode(p.Value(), dst)
}
