package parser

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/ijson/arena"
	"github.com/oarkflow/ijson/value"
)

func mustParse(t *testing.T, doc string, opts ...Option) *value.Value {
	t.Helper()
	p := New(opts...)
	require.NoError(t, p.Parse([]byte(doc)), doc)
	return p.Value()
}

func asString(t *testing.T, v *value.Value) string {
	t.Helper()
	s, err := v.AsString()
	require.NoError(t, err)
	return s.String()
}

func TestMayBeComplete(t *testing.T) {
	for _, doc := range []string{`{}`, `[]`, `false`, `true`, `null`, `123`, `  {"a":1}  `, `"abc"`} {
		assert.True(t, MayBeComplete([]byte(doc)), doc)
	}
	for _, doc := range []string{`{{`, `[[`, `[}`, `{]`, `{`, ``, `   `, `1`, `"ab`, `nul`, `tru`} {
		assert.False(t, MayBeComplete([]byte(doc)), doc)
	}
}

func TestParseIntegers(t *testing.T) {
	tests := map[string]int64{
		"1":                    1,
		"17":                   17,
		"-123456789":           -123456789,
		"0":                    0,
		"-0":                   0,
		"9223372036854775807":  9223372036854775807,
		"-9223372036854775808": -9223372036854775808,
		" 42 ":                 42,
	}
	for doc, want := range tests {
		v := mustParse(t, doc)
		require.Equal(t, value.KindInt64, v.Kind(), doc)
		got, _ := v.AsInt64()
		assert.Equal(t, want, got, doc)
	}
}

func TestParseDoubles(t *testing.T) {
	tests := map[string]float64{
		"1.5":     1.5,
		"-1.5":    -1.5,
		"17.45e1": 174.5,
		"0.25":    0.25,
		"1e3":     1000,
		"2E-2":    0.02,
		"0e0":     0,
		"1e-400":  0,
	}
	for doc, want := range tests {
		v := mustParse(t, doc)
		require.Equal(t, value.KindDouble, v.Kind(), doc)
		got, _ := v.AsDouble()
		assert.Equal(t, want, got, doc)
	}
}

func TestParseBadNumbers(t *testing.T) {
	for _, doc := range []string{
		"-123456-789",
		"-123456789Q",
		"-123.456.789",
		"-1234e56789eQ",
		"1234e56789e1000000000",
		"-1234e56789e1000000000",
		"1e400",
		"-",
		"1.5e",
	} {
		err := New().Parse([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, ErrUnparseableNumber) || errors.Is(err, ErrJunk), "%s: %v", doc, err)
	}
}

func TestParseStrictNumbers(t *testing.T) {
	tests := []struct {
		doc    string
		err    error
		offset int
	}{
		{"-123123123123123123123123123123", ErrUnparseableNumber, 0},
		{"+1", ErrUnparseableNumber, 2},
		{"01", ErrUnparseableNumber, 2},
		{"-01", ErrUnparseableNumber, 3},
		{".5", ErrUnparseableNumber, 2},
		{"-.5", ErrUnparseableNumber, 3},
		{"1.", ErrUnparseableNumber, 2},
		{"1.e5", ErrUnparseableNumber, 4},
		{"[1,0012]", ErrUnparseableNumber, 7},
		{"1e2e3", ErrUnparseableNumber, 0},
		{"1.2.3.4", ErrUnparseableNumber, 0},
		{"12x", ErrJunk, 0},
	}
	for _, tt := range tests {
		err := New().Parse([]byte(tt.doc))
		require.Error(t, err, tt.doc)
		assert.ErrorIs(t, err, tt.err, tt.doc)
		assert.Equal(t, tt.offset, Offset(err), tt.doc)
	}
}

func TestParseStrings(t *testing.T) {
	tests := map[string]string{
		`""`:                 "",
		`"abc"`:              "abc",
		`"ab\"c"`:            `ab"c`,
		"\"abc\"  ":          "abc",
		"  \"abc\"":          "abc",
		"\"abc\"\r\n":        "abc",
		`"a\/b\\c"`:          `a/b\c`,
		`"\b\f\n\r\t"`:       "\b\f\n\r\t",
		`"A\u00e9"`:          "A\u00e9",
		`"\u20AC"`:           "\u20ac",
		`"\ud83d\ude00!"`:    "\U0001F600!",
		`"\u0000"`:           "\x00",
	}
	for doc, want := range tests {
		assert.Equal(t, want, asString(t, mustParse(t, doc)), doc)
	}

	weird := string([]byte{0x22, 0xf4, 0x8f, 0xbf, 0xbf, 0x22})
	assert.Equal(t, "\xf4\x8f\xbf\xbf", asString(t, mustParse(t, weird)))
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		doc    string
		err    error
		offset int
	}{
		{`"abc`, ErrUnterminatedString, 0},
		{`["abc`, ErrUnterminatedString, 1},
		{`"abc\"`, ErrUnterminatedString, 0},
		{"\"ab\ncd\"", ErrMissingEscape, 3},
		{"\"ab\\\x01\"", ErrInvalidEscape, 3},
		{`"a\x"`, ErrInvalidEscape, 2},
		{`"\u12"`, ErrInvalidEscape, 1},
		{`"\u12G4"`, ErrInvalidEscape, 1},
		{`"\ud800"`, ErrInvalidEscape, 1},
		{`"\ud800A"`, ErrInvalidEscape, 1},
		{`"\udc00"`, ErrInvalidEscape, 1},
	}
	for _, tt := range tests {
		err := New().Parse([]byte(tt.doc))
		require.Error(t, err, tt.doc)
		assert.ErrorIs(t, err, tt.err, tt.doc)
		assert.Equal(t, tt.offset, Offset(err), tt.doc)
	}
}

func TestParseLiterals(t *testing.T) {
	v := mustParse(t, "true")
	b, err := v.AsBoolean()
	require.NoError(t, err)
	assert.True(t, b)

	v = mustParse(t, "false")
	b, _ = v.AsBoolean()
	assert.False(t, b)

	assert.True(t, mustParse(t, "null").IsNull())
	assert.True(t, mustParse(t, "[true,false,null]").Index(2).IsNull())

	for doc, offset := range map[string]int{"tru": 0, "nul": 0, "trux": 0, "truex": 4, "[nullx]": 5, "fals": 0} {
		err := New().Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrJunk, doc)
		assert.Equal(t, offset, Offset(err), doc)
	}
}

func TestParseArrays(t *testing.T) {
	v := mustParse(t, "[]")
	require.Equal(t, value.KindArray, v.Kind())
	assert.Zero(t, v.Len())

	v = mustParse(t, "[17, 18,19]")
	require.Equal(t, 3, v.Len())
	for i, want := range []int64{17, 18, 19} {
		got, _ := v.Index(i).AsInt64()
		assert.Equal(t, want, got)
	}

	v = mustParse(t, `["a"]`)
	assert.Equal(t, "a", asString(t, v.Index(0)))

	v = mustParse(t, `[{"foo":[17]},{"boo":42},117,false]`)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, value.KindObject, v.Index(0).Kind())
	assert.Equal(t, value.KindBoolean, v.Index(3).Kind())
}

func TestParseArrayErrors(t *testing.T) {
	tests := []struct {
		doc    string
		err    error
		offset int
	}{
		{"[1,,]", ErrJunk, 3},
		{"[1,]", ErrJunk, 3},
		{"[,1]", ErrJunk, 1},
		{"[1 2]", ErrJunk, 3},
		{"[", ErrUnterminatedArray, 1},
		{"[1", ErrUnterminatedArray, 2},
		{"[1,", ErrUnterminatedArray, 3},
		{"[1, ", ErrUnterminatedArray, 4},
		{"[1]]", ErrJunk, 3},
	}
	for _, tt := range tests {
		err := New().Parse([]byte(tt.doc))
		require.Error(t, err, tt.doc)
		assert.ErrorIs(t, err, tt.err, tt.doc)
		assert.Equal(t, tt.offset, Offset(err), tt.doc)
	}
}

func TestParseObjects(t *testing.T) {
	v := mustParse(t, "{}")
	require.Equal(t, value.KindObject, v.Kind())
	assert.Zero(t, v.Len())

	v = mustParse(t, `  {  "foo"  :  17  }  `)
	foo, _ := v.Get("foo").AsInt64()
	assert.EqualValues(t, 17, foo)

	v = mustParse(t, `{"foo":17,"boo":"goo"}`)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "goo", asString(t, v.Get("boo")))

	v = mustParse(t, `{"foo":[17,42],"boo":{"goo":117}}`)
	assert.Equal(t, value.KindArray, v.Get("foo").Kind())
	assert.Equal(t, value.KindObject, v.Get("boo").Kind())
	goo, _ := v.Get("boo").Get("goo").AsInt64()
	assert.EqualValues(t, 117, goo)

	v = mustParse(t, `{"start": 1565115093136, "end": 1565115113136, "queries": [{"aggregator": "avg", "metric": "temperature"}]}`)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, value.KindInt64, v.Get("start").Kind())
	end, _ := v.Get("end").AsInt64()
	assert.EqualValues(t, 1565115113136, end)
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v := mustParse(t, `{"a":[1,2],"b":true,"a":"x"}`)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "x", asString(t, v.Get("a")))
}

func TestParseObjectErrors(t *testing.T) {
	tests := []struct {
		doc    string
		err    error
		offset int
	}{
		{`{"foo":17,}`, ErrExpectedString, 10},
		{`{,}`, ErrExpectedString, 1},
		{`{foo:1}`, ErrExpectedString, 1},
		{`{"a" 1}`, ErrExpectedColon, 5},
		{`{"a":1 "b":2}`, ErrJunk, 7},
		{`{"a":}`, ErrJunk, 5},
		{`{`, ErrUnterminatedObject, 1},
		{`{"a"`, ErrUnterminatedObject, 4},
		{`{"a":`, ErrUnterminatedObject, 5},
		{`{"a":1`, ErrUnterminatedObject, 6},
		{`{"a":1,`, ErrUnterminatedObject, 7},
	}
	for _, tt := range tests {
		err := New().Parse([]byte(tt.doc))
		require.Error(t, err, tt.doc)
		assert.ErrorIs(t, err, tt.err, tt.doc)
		assert.Equal(t, tt.offset, Offset(err), tt.doc)
	}
}

func TestParseTopLevel(t *testing.T) {
	for doc, offset := range map[string]int{"": 0, "   ": 3, "\xEF\xBB\xBF": 3} {
		err := New().Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrExpectedValue, "%q", doc)
		assert.Equal(t, offset, Offset(err), "%q", doc)
	}

	err := New().Parse([]byte(`1 2`))
	assert.ErrorIs(t, err, ErrJunk)
	assert.Equal(t, 2, Offset(err))

	v := mustParse(t, "\xEF\xBB\xBF1")
	one, err := v.AsInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 1, one)

	err = New().Parse([]byte("\xEF\xBB\xBF{"))
	assert.Equal(t, 4, Offset(err))
}

func TestParseNestingLimit(t *testing.T) {
	const doc = `{"":[{"":[{"":[{"":[{}]}]}]}]}`
	p := New()
	require.NoError(t, p.Parse([]byte(doc)))
	require.NoError(t, p.ParseLevels([]byte(doc), 10))
	require.NoError(t, p.ParseLevels([]byte(doc), 9))

	err := p.ParseLevels([]byte(doc), 7)
	require.ErrorIs(t, err, ErrTooManyLevels)
	assert.Equal(t, 19, Offset(err))
	assert.True(t, p.Value().IsNull())

	err = p.ParseLevels([]byte(`[]`), 0)
	assert.ErrorIs(t, err, ErrTooManyLevels)
	require.NoError(t, p.ParseLevels([]byte(`1`), 0))

	deep := strings.Repeat("[", DefaultMaxNestingLevels+1) + strings.Repeat("]", DefaultMaxNestingLevels+1)
	assert.ErrorIs(t, New().Parse([]byte(deep)), ErrTooManyLevels)
	require.NoError(t, New(WithMaxNestingLevels(DefaultMaxNestingLevels+1)).Parse([]byte(deep)))
}

func TestParseZeroCopy(t *testing.T) {
	input := []byte(`{"plain":"abc","escaped":"a\nb"}`)
	p := New()
	require.NoError(t, p.Parse(input))

	plain, err := p.Value().Get("plain").AsString()
	require.NoError(t, err)
	assert.True(t, plain.Within(input))
	assert.Equal(t, len(plain), cap(plain))

	escaped, err := p.Value().Get("escaped").AsString()
	require.NoError(t, err)
	assert.False(t, escaped.Overlaps(input))
	assert.Equal(t, "a\nb", escaped.String())
	assert.Positive(t, p.Arena().Stats().Used)

}

func TestParseReuse(t *testing.T) {
	p := New(WithChunkSize(64))
	require.NoError(t, p.Parse([]byte(`"a\tb"`)))
	require.Equal(t, 1, p.Arena().Stats().Chunks)

	require.Error(t, p.Parse([]byte(`[1,`)))
	assert.True(t, p.Value().IsNull())
	assert.Zero(t, p.Arena().Stats().Chunks)

	require.NoError(t, p.ParseString(`[1]`))
	assert.Equal(t, 1, p.Value().Len())

	taken := p.Take()
	assert.True(t, p.Value().IsNull())
	assert.Equal(t, 1, taken.Len())
}

func TestTakenTreeOutlivesNextParse(t *testing.T) {
	p := New(WithChunkSize(16))
	require.NoError(t, p.Parse([]byte(`["a\tb","c\nd"]`)))
	taken := p.Take()

	require.NoError(t, p.Parse([]byte(`["x\ty","z\nw"]`)))
	assert.Equal(t, "a\tb", asString(t, taken.Index(0)))
	assert.Equal(t, "c\nd", asString(t, taken.Index(1)))
	assert.Equal(t, "x\ty", asString(t, p.Value().Index(0)))
}

func TestParseSharedArena(t *testing.T) {
	a := arena.New(arena.DefaultChunkSize)
	p := New(WithArena(a))
	require.NoError(t, p.Parse([]byte(`"x\ty"`)))
	first, _ := p.Value().AsString()
	require.NoError(t, p.Parse([]byte(`"z\tw"`)))
	assert.Same(t, a, p.Arena())
	assert.Equal(t, "x\ty", first.String())
	assert.Equal(t, 8, a.Stats().Used)
}

func TestPackageParse(t *testing.T) {
	v, err := Parse([]byte(`{"k":[1,2.5,"s"]}`))
	require.NoError(t, err)
	k := v.Get("k")
	require.NotNil(t, k)
	assert.Equal(t, "s", asString(t, k.Index(2)))

	v, err = Parse([]byte(`{"k"`))
	require.Error(t, err)
	assert.True(t, v.IsNull())

	assert.True(t, Valid([]byte(`[1,{"a":null}]`)))
	assert.False(t, Valid([]byte(`[1,{"a":nul}]`)))
}

func TestSyntaxError(t *testing.T) {
	err := New().Parse([]byte(`[1,]`))
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "junk at offset 3", se.Error())
	assert.Equal(t, -1, Offset(errors.New("other")))

	assert.True(t, IsTruncation(New().Parse([]byte(`{"a":[1,`))))
	assert.True(t, IsTruncation(New().Parse([]byte(`"abc`))))
	assert.False(t, IsTruncation(New().Parse([]byte(`[1,]`))))
}
