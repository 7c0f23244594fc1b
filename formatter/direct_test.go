package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func direct(t *testing.T, pretty bool, build func(df *DirectFormatter)) string {
	t.Helper()
	var out []byte
	df := NewDirectFormatter(func(p []byte) error {
		out = append(out, p...)
		return nil
	}, pretty)
	build(df)
	require.NoError(t, df.Flush())
	return string(out)
}

func TestDirectScalars(t *testing.T) {
	tests := []struct {
		name  string
		build func(df *DirectFormatter)
		want  string
	}{
		{"null", func(df *DirectFormatter) { df.AppendNull() }, "null"},
		{"true", func(df *DirectFormatter) { df.AppendBool(true) }, "true"},
		{"false", func(df *DirectFormatter) { df.AppendBool(false) }, "false"},
		{"zero", func(df *DirectFormatter) { df.AppendInt64(0) }, "0"},
		{"int", func(df *DirectFormatter) { df.AppendInt64(42) }, "42"},
		{"negative int", func(df *DirectFormatter) { df.AppendInt64(-42) }, "-42"},
		{"large int", func(df *DirectFormatter) { df.AppendInt64(123456) }, "123456"},
		{"negative large int", func(df *DirectFormatter) { df.AppendInt64(-123456) }, "-123456"},
		{"double zero", func(df *DirectFormatter) { df.AppendDouble(0) }, "0"},
		{"whole double", func(df *DirectFormatter) { df.AppendDouble(17) }, "17"},
		{"double", func(df *DirectFormatter) { df.AppendDouble(42.5) }, "42.5"},
		{"negative double", func(df *DirectFormatter) { df.AppendDouble(-42.5) }, "-42.5"},
		{"small double", func(df *DirectFormatter) { df.AppendDouble(0.0042500000001) }, "0.0042500000001"},
		{"subnormal", func(df *DirectFormatter) { df.AppendDouble(5e-324) }, "0"},
		{"huge double", func(df *DirectFormatter) { df.AppendDouble(1e300) }, "1e+300"},
		{"string", func(df *DirectFormatter) { df.AppendStringOf("foo") }, `"foo"`},
		{"escaped string", func(df *DirectFormatter) { df.AppendStringOf("fo\no") }, `"fo\no"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, direct(t, false, tt.build))
		})
	}
}

func TestDirectContainers(t *testing.T) {
	assert.Equal(t, "[]", direct(t, false, func(df *DirectFormatter) {
		df.OpenArray()
		df.CloseArray()
	}))
	assert.Equal(t, `["abc",17]`, direct(t, false, func(df *DirectFormatter) {
		df.OpenArray()
		df.AppendStringOf("abc")
		df.AppendArrayMemberSeparator()
		df.AppendInt64(17)
		df.CloseArray()
	}))
	assert.Equal(t, "{}", direct(t, false, func(df *DirectFormatter) {
		df.OpenObject()
		df.CloseObject()
	}))
	assert.Equal(t, `{"foo":"abc","boo":17}`, direct(t, false, func(df *DirectFormatter) {
		df.OpenObject()
		df.BeginObjectMemberOf("foo")
		df.AppendStringOf("abc")
		df.AppendObjectMemberSeparator()
		df.BeginObjectMemberOf("boo")
		df.AppendInt64(17)
		df.CloseObject()
	}))
}

func TestDirectPretty(t *testing.T) {
	got := direct(t, true, func(df *DirectFormatter) {
		df.OpenObject()
		df.BeginObjectMemberOf("foo")
		df.AppendInt64(17)
		df.AppendObjectMemberSeparator()
		df.BeginObjectMemberOf("boo")
		df.OpenArray()
		df.AppendNull()
		df.AppendArrayMemberSeparator()
		df.AppendInt64(42)
		df.AppendArrayMemberSeparator()
		df.AppendInt64(117)
		df.AppendArrayMemberSeparator()
		df.OpenObject()
		df.CloseObject()
		df.AppendArrayMemberSeparator()
		df.AppendInt64(1234)
		df.CloseArray()
		df.AppendObjectMemberSeparator()
		df.BeginObjectMemberOf("goo")
		df.OpenObject()
		df.BeginObjectMemberOf("zoo")
		df.AppendInt64(9876)
		df.AppendObjectMemberSeparator()
		df.BeginObjectMemberOf("xoo")
		df.OpenArray()
		df.CloseArray()
		df.CloseObject()
		df.AppendObjectMemberSeparator()
		df.BeginObjectMemberOf("doo")
		df.AppendBool(false)
		df.CloseObject()
	})
	want := "{\n" +
		"\t\"foo\":17,\n" +
		"\t\"boo\":[\n" +
		"\t\tnull,\n" +
		"\t\t42,\n" +
		"\t\t117,\n" +
		"\t\t{},\n" +
		"\t\t1234\n" +
		"\t],\n" +
		"\t\"goo\":{\n" +
		"\t\t\"zoo\":9876,\n" +
		"\t\t\"xoo\":[]\n" +
		"\t},\n" +
		"\t\"doo\":false\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestDirectErrors(t *testing.T) {
	df := NewDirectFormatter(func(p []byte) error { return nil }, false)
	df.OpenArray()
	df.AppendDouble(math.NaN())
	df.CloseArray()
	assert.ErrorIs(t, df.Flush(), ErrUnsupportedValue)

	df = NewDirectFormatter(func(p []byte) error { return ErrInsufficientRoom }, false)
	df.AppendNull()
	assert.ErrorIs(t, df.Flush(), ErrInsufficientRoom)
}
