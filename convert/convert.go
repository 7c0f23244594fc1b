// Package convert moves data between value trees and ordinary Go values.
//
// Strings copied out of a value tree are always fresh Go strings, so the
// results of ToAny and Decode stay valid after the parser that produced the
// tree is reused. FromAny does the opposite and lets the tree alias the Go
// strings it was built from.
package convert

import (
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
	goreflect "github.com/goccy/go-reflect"

	"github.com/oarkflow/ijson/span"
	"github.com/oarkflow/ijson/value"
)

// ErrUnsupportedType is returned for Go types that have no JSON form.
var ErrUnsupportedType = errors.New("unsupported type")

// ErrInvalidTarget is returned by Decode when dst is not a non-nil pointer.
var ErrInvalidTarget = errors.New("target must be a non-nil pointer")

// ToAny converts v to the generic form: map[string]any, []any, string,
// int64, float64, bool or nil.
func ToAny(v *value.Value) any {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		return objectToMap(obj)
	case value.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i := range elems {
			out[i] = ToAny(&elems[i])
		}
		return out
	case value.KindString:
		s, _ := v.AsString()
		return s.String()
	case value.KindBoolean:
		b, _ := v.AsBoolean()
		return b
	case value.KindInt64:
		i, _ := v.AsInt64()
		return i
	case value.KindDouble:
		d, _ := v.AsDouble()
		return d
	}
	return nil
}

func objectToMap(obj *value.Object) map[string]any {
	out := make(map[string]any, obj.Len())
	obj.Ascend(func(key span.Span, member *value.Value) bool {
		out[key.String()] = ToAny(member)
		return true
	})
	return out
}

// FromAny builds a value tree from x. Maps need string keys; structs follow
// their json tags, including "-" and omitempty.
func FromAny(x any) (value.Value, error) {
	switch vv := x.(type) {
	case nil:
		return value.Null(), nil
	case value.Value:
		return vv, nil
	case *value.Value:
		if vv == nil {
			return value.Null(), nil
		}
		return *vv, nil
	case string:
		return value.StringOf(vv), nil
	case bool:
		return value.Bool(vv), nil
	case int:
		return value.Int64(int64(vv)), nil
	case int64:
		return value.Int64(vv), nil
	case float64:
		return value.Double(vv), nil
	case map[string]any:
		obj := value.NewObject()
		for k, elem := range vv {
			member, err := FromAny(elem)
			if err != nil {
				return value.Null(), errors.Wrapf(err, "key %q", k)
			}
			obj.Set(span.Of(k), member)
		}
		return value.FromObject(obj), nil
	case []any:
		elems := make([]value.Value, len(vv))
		for i, elem := range vv {
			var err error
			if elems[i], err = FromAny(elem); err != nil {
				return value.Null(), errors.Wrapf(err, "index %d", i)
			}
		}
		return value.FromArray(elems), nil
	}
	return fromReflect(goreflect.ToReflectValue(goreflect.ValueOf(x)))
}

func fromReflect(rv reflect.Value) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return value.Null(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return fromReflect(rv.Elem())
	case reflect.String:
		return value.StringOf(rv.String()), nil
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return value.Double(float64(u)), nil
		}
		return value.Int64(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return value.Double(rv.Float()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return fromReflectList(rv)
	case reflect.Array:
		return fromReflectList(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value.Null(), errors.Wrapf(ErrUnsupportedType, "map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return value.Null(), nil
		}
		obj := value.NewObject()
		iter := rv.MapRange()
		for iter.Next() {
			member, err := fromReflect(iter.Value())
			if err != nil {
				return value.Null(), errors.Wrapf(err, "key %q", iter.Key().String())
			}
			obj.Set(span.Of(iter.Key().String()), member)
		}
		return value.FromObject(obj), nil
	case reflect.Struct:
		if rv.Type() == valueType {
			return rv.Interface().(value.Value), nil
		}
		obj := value.NewObject()
		for _, info := range getStructFields(rv.Type()) {
			fv := rv.FieldByIndex(info.index)
			if info.omitEmpty && isEmptyValue(fv) {
				continue
			}
			member, err := fromReflect(fv)
			if err != nil {
				return value.Null(), errors.Wrapf(err, "field %q", info.name)
			}
			obj.Set(span.Of(info.name), member)
		}
		return value.FromObject(obj), nil
	}
	return value.Null(), errors.Wrapf(ErrUnsupportedType, "%s", rv.Type())
}

var valueType = reflect.TypeOf(value.Value{})

func fromReflectList(rv reflect.Value) (value.Value, error) {
	elems := make([]value.Value, rv.Len())
	for i := range elems {
		var err error
		if elems[i], err = fromReflect(rv.Index(i)); err != nil {
			return value.Null(), errors.Wrapf(err, "index %d", i)
		}
	}
	return value.FromArray(elems), nil
}
