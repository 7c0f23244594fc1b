package marshaler

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/ijson/value"
)

func TestMarshal(t *testing.T) {
	out, err := Instance()(map[string]any{"b": 1, "a": []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x"],"b":1}`, string(out))

	out, err = MarshalIndent([]any{1.5})
	require.NoError(t, err)
	assert.Equal(t, "[\n\t1.5\n]\n", string(out))

	v := value.StringOf("s")
	out, err = Marshal(&v)
	require.NoError(t, err)
	assert.Equal(t, `"s"`, string(out))

	_, err = Marshal(func() {})
	assert.Error(t, err)
}

func TestSetMarshaler(t *testing.T) {
	prev := Instance()
	defer SetMarshaler(prev)

	SetMarshaler(gojson.Marshal)
	out, err := Instance()(map[string]int{"k": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":1}`, string(out))
}
