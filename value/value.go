// Package value implements the in-memory JSON value tree.
//
// A Value is a tagged union: exactly one payload is active, selected by its
// Kind. String payloads are span.Span views that alias either the parsed
// input or a parser arena; a Value never copies them on its own.
package value

import (
	"math"

	"github.com/oarkflow/ijson/span"
)

// Kind is the discriminant of a Value. The zero Kind is KindNull.
type Kind uint8

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindBoolean
	KindDouble
	KindInt64
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindDouble:
		return "double"
	case KindInt64:
		return "int64"
	default:
		return "unknown"
	}
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind Kind
	n    uint64 // boolean, int64 and double payloads
	s    span.Span
	a    []Value
	o    *Object
}

// ----------------------
// Constructors
// ----------------------

func Null() Value { return Value{} }

func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.n = 1
	}
	return v
}

func Int64(i int64) Value { return Value{kind: KindInt64, n: uint64(i)} }

func Double(f float64) Value { return Value{kind: KindDouble, n: math.Float64bits(f)} }

// String returns a string value viewing s. The bytes behind s must outlive
// the value and must not be modified.
func String(s span.Span) Value { return Value{kind: KindString, s: s} }

// StringOf returns a string value viewing the bytes of str.
func StringOf(str string) Value { return Value{kind: KindString, s: span.Of(str)} }

// FromArray returns an array value that takes ownership of elems.
func FromArray(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// FromObject returns an object value that takes ownership of o.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, o: o}
}

// FromMap builds an object value from a Go map.
func FromMap(m map[string]Value) Value {
	o := NewObject()
	for k, v := range m {
		o.Set(span.Of(k), v)
	}
	return Value{kind: KindObject, o: o}
}

// ----------------------
// Tag queries and typed accessors
// ----------------------

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool { return v.kind == KindNull }

func (v *Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, typeError(KindObject, v.kind)
	}
	return v.o, nil
}

func (v *Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, typeError(KindArray, v.kind)
	}
	return v.a, nil
}

func (v *Value) AsString() (span.Span, error) {
	if v.kind != KindString {
		return nil, typeError(KindString, v.kind)
	}
	return v.s, nil
}

func (v *Value) AsBoolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, typeError(KindBoolean, v.kind)
	}
	return v.n != 0, nil
}

func (v *Value) AsInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, typeError(KindInt64, v.kind)
	}
	return int64(v.n), nil
}

func (v *Value) AsDouble() (float64, error) {
	if v.kind != KindDouble {
		return 0, typeError(KindDouble, v.kind)
	}
	return math.Float64frombits(v.n), nil
}

// ----------------------
// Mutation
// ----------------------

// clear drops the active payload and leaves v null. Every setter calls it
// before installing the new payload.
func (v *Value) clear() {
	v.kind = KindNull
	v.n = 0
	v.s = nil
	v.a = nil
	v.o = nil
}

func (v *Value) SetNull() { v.clear() }

func (v *Value) SetBool(b bool) {
	v.clear()
	if b {
		v.n = 1
	}
	v.kind = KindBoolean
}

func (v *Value) SetInt64(i int64) {
	v.clear()
	v.n = uint64(i)
	v.kind = KindInt64
}

func (v *Value) SetDouble(f float64) {
	v.clear()
	v.n = math.Float64bits(f)
	v.kind = KindDouble
}

func (v *Value) SetString(s span.Span) {
	v.clear()
	v.s = s
	v.kind = KindString
}

// SetArray installs elems without copying them.
func (v *Value) SetArray(elems []Value) {
	v.clear()
	if elems == nil {
		elems = []Value{}
	}
	v.a = elems
	v.kind = KindArray
}

// SetObject installs o without copying it.
func (v *Value) SetObject(o *Object) {
	v.clear()
	if o == nil {
		o = NewObject()
	}
	v.o = o
	v.kind = KindObject
}

// Assign replaces v with a deep copy of src.
func (v *Value) Assign(src *Value) {
	if v == src {
		return
	}
	c := src.Clone()
	v.clear()
	*v = c
}

// MoveFrom transfers src's payload to v without copying containers and
// leaves src null.
func (v *Value) MoveFrom(src *Value) {
	if v == src {
		return
	}
	v.clear()
	*v = *src
	src.clear()
}

// Clone returns a deep copy of v. Containers are copied recursively; string
// views are shared since the viewed bytes are immutable.
func (v *Value) Clone() Value {
	switch v.kind {
	case KindArray:
		elems := make([]Value, len(v.a))
		for i := range v.a {
			elems[i] = v.a[i].Clone()
		}
		return Value{kind: KindArray, a: elems}
	case KindObject:
		return Value{kind: KindObject, o: v.o.Clone()}
	default:
		return *v
	}
}

// ----------------------
// Container helpers
// ----------------------

// Len returns the number of elements of an array or members of an object,
// and 0 for every other kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return v.o.Len()
	}
	return 0
}

// Index returns the i-th array element or nil.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.a) {
		return nil
	}
	return &v.a[i]
}

// Get returns the member named key or nil.
func (v *Value) Get(key string) *Value {
	if v.kind != KindObject {
		return nil
	}
	m, ok := v.o.Get(span.Of(key))
	if !ok {
		return nil
	}
	return m
}

// Append adds elem to an array value.
func (v *Value) Append(elem Value) error {
	if v.kind != KindArray {
		return typeError(KindArray, v.kind)
	}
	v.a = append(v.a, elem)
	return nil
}

// Equal reports structural equality. Numbers of different kinds are never
// equal, so Int64(1) differs from Double(1).
func (v *Value) Equal(o *Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean, KindInt64:
		return v.n == o.n
	case KindDouble:
		return math.Float64frombits(v.n) == math.Float64frombits(o.n)
	case KindString:
		return v.s.Equal(o.s)
	case KindArray:
		if len(v.a) != len(o.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(&o.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.o.Equal(o.o)
	}
	return false
}
