package convert

import (
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
	goreflect "github.com/goccy/go-reflect"

	"github.com/oarkflow/ijson/span"
	"github.com/oarkflow/ijson/value"
)

// Decode stores v into the Go value dst points to. Common targets are
// handled without reflection; structs, slices, arrays, maps with string keys
// and pointers are filled through reflection with cached field metadata.
func Decode(v *value.Value, dst any) error {
	if dst == nil {
		return ErrInvalidTarget
	}
	rv := goreflect.ToReflectValue(goreflect.ValueOf(dst))
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Wrapf(ErrInvalidTarget, "got %T", dst)
	}
	// Handle basic types directly.
	switch target := dst.(type) {
	case *value.Value:
		target.Assign(v)
		return nil
	case *any:
		*target = ToAny(v)
		return nil
	case *map[string]any:
		if v.IsNull() {
			*target = nil
			return nil
		}
		obj, err := v.AsObject()
		if err != nil {
			return err
		}
		*target = objectToMap(obj)
		return nil
	case *[]any:
		if v.IsNull() {
			*target = nil
			return nil
		}
		if v.Kind() != value.KindArray {
			return &value.TypeError{Expected: value.KindArray, Actual: v.Kind()}
		}
		*target = ToAny(v).([]any)
		return nil
	case *string:
		s, err := v.AsString()
		if err != nil {
			return err
		}
		*target = s.String()
		return nil
	case *bool:
		b, err := v.AsBoolean()
		if err != nil {
			return err
		}
		*target = b
		return nil
	case *int64:
		i, err := toInt64(v)
		if err != nil {
			return err
		}
		*target = i
		return nil
	case *float64:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		*target = f
		return nil
	}
	return assignValue(rv.Elem(), v)
}

func toInt64(v *value.Value) (int64, error) {
	switch v.Kind() {
	case value.KindInt64:
		return v.AsInt64()
	case value.KindDouble:
		d, _ := v.AsDouble()
		if d != math.Trunc(d) || d < math.MinInt64 || d >= math.MaxInt64 {
			return 0, errors.Newf("number %v is not an integer", d)
		}
		return int64(d), nil
	}
	return 0, &value.TypeError{Expected: value.KindInt64, Actual: v.Kind()}
}

func toFloat64(v *value.Value) (float64, error) {
	switch v.Kind() {
	case value.KindDouble:
		return v.AsDouble()
	case value.KindInt64:
		i, _ := v.AsInt64()
		return float64(i), nil
	}
	return 0, &value.TypeError{Expected: value.KindDouble, Actual: v.Kind()}
}

// decodeStruct uses reflection (with cached metadata) to assign the object's
// members to the matching fields. Members without a field are ignored.
func decodeStruct(fv reflect.Value, obj *value.Object) error {
	fields := getStructFields(fv.Type())
	for _, info := range fields {
		member, ok := obj.GetString(info.name)
		if !ok {
			continue
		}
		f := fv.FieldByIndex(info.index)
		if !f.CanSet() {
			continue
		}
		if err := assignValue(f, member); err != nil {
			return errors.Wrapf(err, "field %q", info.name)
		}
	}
	return nil
}

// assignValue converts v and stores it in fv.
func assignValue(fv reflect.Value, v *value.Value) error {
	// null leaves a zero value behind.
	if v.IsNull() {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		s, err := v.AsString()
		if err != nil {
			return err
		}
		fv.SetString(s.String())
	case reflect.Bool:
		b, err := v.AsBoolean()
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := toInt64(v)
		if err != nil {
			return err
		}
		if fv.OverflowInt(i) {
			return errors.Newf("number %d overflows %s", i, fv.Type())
		}
		fv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, err := toInt64(v)
		if err != nil {
			return err
		}
		if i < 0 || fv.OverflowUint(uint64(i)) {
			return errors.Newf("number %d overflows %s", i, fv.Type())
		}
		fv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Struct:
		if fv.Type() == valueType {
			fv.Set(reflect.ValueOf(v.Clone()))
			return nil
		}
		obj, err := v.AsObject()
		if err != nil {
			return err
		}
		return decodeStruct(fv, obj)
	case reflect.Map:
		if fv.Type().Key().Kind() != reflect.String {
			return errors.Wrapf(ErrUnsupportedType, "map key type %s", fv.Type().Key())
		}
		obj, err := v.AsObject()
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(fv.Type(), obj.Len())
		elemType := fv.Type().Elem()
		obj.Ascend(func(key span.Span, member *value.Value) bool {
			elem := reflect.New(elemType).Elem()
			if err = assignValue(elem, member); err != nil {
				err = errors.Wrapf(err, "key %q", key.String())
				return false
			}
			m.SetMapIndex(reflect.ValueOf(key.String()).Convert(fv.Type().Key()), elem)
			return true
		})
		if err != nil {
			return err
		}
		fv.Set(m)
	case reflect.Slice:
		elems, err := v.AsArray()
		if err != nil {
			return err
		}
		slice := reflect.MakeSlice(fv.Type(), len(elems), len(elems))
		for i := range elems {
			if err := assignValue(slice.Index(i), &elems[i]); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		fv.Set(slice)
	case reflect.Array:
		elems, err := v.AsArray()
		if err != nil {
			return err
		}
		for i := 0; i < fv.Len(); i++ {
			if i >= len(elems) {
				fv.Index(i).Set(reflect.Zero(fv.Type().Elem()))
				continue
			}
			if err := assignValue(fv.Index(i), &elems[i]); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
	case reflect.Pointer:
		ptrVal := reflect.New(fv.Type().Elem())
		if err := assignValue(ptrVal.Elem(), v); err != nil {
			return err
		}
		fv.Set(ptrVal)
	case reflect.Interface:
		if fv.NumMethod() != 0 {
			return errors.Wrapf(ErrUnsupportedType, "%s", fv.Type())
		}
		fv.Set(reflect.ValueOf(ToAny(v)))
	default:
		return errors.Wrapf(ErrUnsupportedType, "%s", fv.Type())
	}
	return nil
}
