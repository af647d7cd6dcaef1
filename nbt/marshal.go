package nbt

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Marshal converts a Go value into a Tag tree:
//
//	bool                    Byte (1 or 0)
//	int8, uint8             Byte
//	int16, uint16           Short
//	int32, uint32           Int
//	int, int64, uint, ...   Long
//	float32                 Float
//	float64                 Double
//	string                  String
//	[]int8, []uint8         ByteArray
//	[]int32                 IntArray
//	[]int64                 LongArray
//	other slices, arrays    List
//	map[string]T            Compound, keys sorted
//	struct                  Compound, fields in declared order
//	*Tag                    passed through unchanged
//
// Struct fields use the field name unless an `nbt:"name"` tag renames
// them; `nbt:"-"` skips a field and the `omitempty` option drops fields
// holding their type's zero value. Unexported fields are ignored.
// Unsigned integers are reinterpreted as their signed wire width.
func Marshal(v any) (*Tag, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("nbt: cannot marshal nil")
	}
	return marshalValue(rv)
}

// Unmarshal reads a Tag tree into the Go value pointed to by v, using
// the same mapping as Marshal. A compound field absent from the tree
// leaves the destination field at its current value; compound keys with
// no matching field are ignored. Unmarshaling into a *Tag or an empty
// interface stores the tag itself.
func Unmarshal(t *Tag, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("nbt: unmarshal target must be a non-nil pointer, got %T", v)
	}
	return unmarshalValue(t, rv.Elem())
}

var tagPtrType = reflect.TypeOf((*Tag)(nil))

func marshalValue(rv reflect.Value) (*Tag, error) {
	if rv.Type() == tagPtrType {
		if rv.IsNil() {
			return nil, fmt.Errorf("nbt: cannot marshal a nil *Tag")
		}
		return rv.Interface().(*Tag), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("nbt: cannot marshal nil %s", rv.Type())
		}
		return marshalValue(rv.Elem())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int8:
		return Byte(int8(rv.Int())), nil
	case reflect.Int16:
		return Short(int16(rv.Int())), nil
	case reflect.Int32:
		return Int(int32(rv.Int())), nil
	case reflect.Int, reflect.Int64:
		return Long(rv.Int()), nil
	case reflect.Uint8:
		return Byte(int8(rv.Uint())), nil
	case reflect.Uint16:
		return Short(int16(rv.Uint())), nil
	case reflect.Uint32:
		return Int(int32(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64:
		return Long(int64(rv.Uint())), nil
	case reflect.Float32:
		return Float(float32(rv.Float())), nil
	case reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return marshalSequence(rv)
	case reflect.Map:
		return marshalMap(rv)
	case reflect.Struct:
		return marshalStruct(rv)
	default:
		return nil, fmt.Errorf("nbt: cannot marshal %s", rv.Type())
	}
}

// marshalSequence picks the specialized array variants for the element
// widths the wire format favors, and a generic List otherwise.
func marshalSequence(rv reflect.Value) (*Tag, error) {
	n := rv.Len()
	switch rv.Type().Elem().Kind() {
	case reflect.Int8:
		arr := make([]int8, n)
		for i := 0; i < n; i++ {
			arr[i] = int8(rv.Index(i).Int())
		}
		return ByteArray(arr), nil
	case reflect.Uint8:
		arr := make([]int8, n)
		for i := 0; i < n; i++ {
			arr[i] = int8(rv.Index(i).Uint())
		}
		return ByteArray(arr), nil
	case reflect.Int32:
		arr := make([]int32, n)
		for i := 0; i < n; i++ {
			arr[i] = int32(rv.Index(i).Int())
		}
		return IntArray(arr), nil
	case reflect.Int64:
		arr := make([]int64, n)
		for i := 0; i < n; i++ {
			arr[i] = rv.Index(i).Int()
		}
		return LongArray(arr), nil
	}

	l := NewList()
	for i := 0; i < n; i++ {
		t, err := marshalValue(rv.Index(i))
		if err != nil {
			return nil, fmt.Errorf("nbt: element %d: %w", i, err)
		}
		if err := l.Append(t); err != nil {
			return nil, fmt.Errorf("nbt: element %d: %w", i, err)
		}
	}
	return ListTag(l), nil
}

// Map iteration order is random, so keys are sorted to keep the output
// deterministic.
func marshalMap(rv reflect.Value) (*Tag, error) {
	mt := rv.Type()
	if mt.Key().Kind() != reflect.String {
		return nil, fmt.Errorf("nbt: map key type %s is not a string", mt.Key())
	}
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	c := NewCompound()
	for _, k := range keys {
		t, err := marshalValue(rv.MapIndex(reflect.ValueOf(k).Convert(mt.Key())))
		if err != nil {
			return nil, fmt.Errorf("nbt: key %q: %w", k, err)
		}
		c.Set(k, t)
	}
	return CompoundTag(c), nil
}

func marshalStruct(rv reflect.Value) (*Tag, error) {
	c := NewCompound()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, omitEmpty, skip := fieldName(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		t, err := marshalValue(fv)
		if err != nil {
			return nil, fmt.Errorf("nbt: field %s: %w", f.Name, err)
		}
		c.Set(name, t)
	}
	return CompoundTag(c), nil
}

func fieldName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	name = f.Name
	tag, ok := f.Tag.Lookup("nbt")
	if !ok {
		return name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func unmarshalValue(t *Tag, rv reflect.Value) error {
	if t == nil || t.ID() == TagEnd {
		return fmt.Errorf("nbt: cannot unmarshal an End tag")
	}
	if rv.Type() == tagPtrType {
		rv.Set(reflect.ValueOf(t))
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(t, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("nbt: cannot unmarshal into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(t))
		return nil
	case reflect.Bool:
		v, err := t.AsBool()
		if err != nil {
			return err
		}
		rv.SetBool(v)
		return nil
	case reflect.Int8:
		v, err := t.AsByte()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Int16:
		v, err := t.AsShort()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Int32:
		v, err := t.AsInt()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Int, reflect.Int64:
		v, err := t.AsLong()
		if err != nil {
			return err
		}
		rv.SetInt(v)
		return nil
	case reflect.Uint8:
		v, err := t.AsByte()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(uint8(v)))
		return nil
	case reflect.Uint16:
		v, err := t.AsShort()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(uint16(v)))
		return nil
	case reflect.Uint32:
		v, err := t.AsInt()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(uint32(v)))
		return nil
	case reflect.Uint, reflect.Uint64:
		v, err := t.AsLong()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case reflect.Float32:
		v, err := t.AsFloat()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(v))
		return nil
	case reflect.Float64:
		v, err := t.AsDouble()
		if err != nil {
			return err
		}
		rv.SetFloat(v)
		return nil
	case reflect.String:
		v, err := t.AsString()
		if err != nil {
			return err
		}
		rv.SetString(v)
		return nil
	case reflect.Slice, reflect.Array:
		return unmarshalSequence(t, rv)
	case reflect.Map:
		return unmarshalMap(t, rv)
	case reflect.Struct:
		return unmarshalStruct(t, rv)
	default:
		return fmt.Errorf("nbt: cannot unmarshal into %s", rv.Type())
	}
}

func unmarshalSequence(t *Tag, rv reflect.Value) error {
	// sized resizes a slice destination to n elements; a fixed array
	// must already have exactly n.
	sized := func(n int) error {
		if rv.Kind() == reflect.Slice {
			rv.Set(reflect.MakeSlice(rv.Type(), n, n))
			return nil
		}
		if rv.Len() != n {
			return fmt.Errorf("nbt: cannot unmarshal %d elements into %s", n, rv.Type())
		}
		return nil
	}

	et := rv.Type().Elem()
	switch et.Kind() {
	case reflect.Int8, reflect.Uint8:
		arr, err := t.AsByteArray()
		if err != nil {
			return err
		}
		if err := sized(len(arr)); err != nil {
			return err
		}
		for i, b := range arr {
			if et.Kind() == reflect.Int8 {
				rv.Index(i).SetInt(int64(b))
			} else {
				rv.Index(i).SetUint(uint64(uint8(b)))
			}
		}
		return nil
	case reflect.Int32:
		arr, err := t.AsIntArray()
		if err != nil {
			return err
		}
		if err := sized(len(arr)); err != nil {
			return err
		}
		for i, v := range arr {
			rv.Index(i).SetInt(int64(v))
		}
		return nil
	case reflect.Int64:
		arr, err := t.AsLongArray()
		if err != nil {
			return err
		}
		if err := sized(len(arr)); err != nil {
			return err
		}
		for i, v := range arr {
			rv.Index(i).SetInt(v)
		}
		return nil
	}

	l, err := t.AsList()
	if err != nil {
		return err
	}
	if err := sized(l.Len()); err != nil {
		return err
	}
	var ferr error
	l.Range(func(i int, elem *Tag) bool {
		if err := unmarshalValue(elem, rv.Index(i)); err != nil {
			ferr = fmt.Errorf("nbt: element %d: %w", i, err)
			return false
		}
		return true
	})
	return ferr
}

func unmarshalMap(t *Tag, rv reflect.Value) error {
	c, err := t.AsCompound()
	if err != nil {
		return err
	}
	mt := rv.Type()
	if mt.Key().Kind() != reflect.String {
		return fmt.Errorf("nbt: map key type %s is not a string", mt.Key())
	}

	m := reflect.MakeMapWithSize(mt, c.Len())
	var ferr error
	c.Range(func(key string, sub *Tag) bool {
		ev := reflect.New(mt.Elem()).Elem()
		if err := unmarshalValue(sub, ev); err != nil {
			ferr = fmt.Errorf("nbt: key %q: %w", key, err)
			return false
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), ev)
		return true
	})
	if ferr != nil {
		return ferr
	}
	rv.Set(m)
	return nil
}

func unmarshalStruct(t *Tag, rv reflect.Value) error {
	c, err := t.AsCompound()
	if err != nil {
		return err
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, _, skip := fieldName(f)
		if skip {
			continue
		}
		sub, ok := c.Get(name)
		if !ok {
			continue
		}
		if err := unmarshalValue(sub, rv.Field(i)); err != nil {
			return fmt.Errorf("nbt: field %s: %w", f.Name, err)
		}
	}
	return nil
}
