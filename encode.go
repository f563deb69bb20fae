package urlform

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Encoder
///////////////////////////////////////////////////////////////////////////////

// Marshal returns the form-urlencoded encoding of v. The top-level value
// must reflect to a mapping (a struct or a string-keyed map): the wire
// format has no representation for a bare scalar or sequence at the root.
func Marshal(v any) ([]byte, error) {
	s, err := EncodeToString(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// EncodeToString is [Marshal] returning a string.
func EncodeToString(v any) (string, error) {
	root, err := ValueOf(v)
	if err != nil {
		return "", err
	}
	return EncodeValue(root)
}

// ValueOf reflects a Go value into a [Value] tree, the inverse of
// [DecodeValue]. Struct fields follow the same `form` tags as decoding;
// `omitempty` fields with zero values and nil pointers are left out.
func ValueOf(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	root, ok, err := valueOf(rv)
	if err != nil {
		return Value{}, err
	}
	if !ok || root.kind != KindMapping {
		return Value{}, fmt.Errorf("urlform: top-level value must encode to a mapping, got %T", v)
	}
	return root, nil
}

// valueOf returns the tree node for rv. ok is false when the value should be
// omitted from the encoding (nil pointer or nil interface).
func valueOf(rv reflect.Value) (Value, bool, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{}, false, nil
		}
		rv = rv.Elem()
	}

	if text, ok, err := marshalLeaf(rv); ok || err != nil {
		if err != nil {
			return Value{}, false, err
		}
		return Scalar(text), true, nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		return structValue(rv)
	case reflect.Map:
		return mapValue(rv)
	case reflect.Slice, reflect.Array:
		return sliceValue(rv)
	default:
		return Value{}, false, fmt.Errorf("urlform: cannot encode %s", rv.Type())
	}
}

func structValue(rv reflect.Value) (Value, bool, error) {
	fields := map[string]Value{}
	tags := fieldTags(rv.Type())
	for i, tag := range tags {
		if tag.Ignore {
			continue
		}
		fv := rv.Field(i)
		if tag.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		sub, ok, err := valueOf(fv)
		if err != nil {
			return Value{}, false, err
		}
		if ok {
			fields[tag.Name] = sub
		}
	}
	return Mapping(fields), true, nil
}

func mapValue(rv reflect.Value) (Value, bool, error) {
	fields := map[string]Value{}
	iter := rv.MapRange()
	for iter.Next() {
		key, err := marshalMapKey(iter.Key())
		if err != nil {
			return Value{}, false, err
		}
		sub, ok, err := valueOf(iter.Value())
		if err != nil {
			return Value{}, false, err
		}
		if ok {
			fields[key] = sub
		}
	}
	return Mapping(fields), true, nil
}

func sliceValue(rv reflect.Value) (Value, bool, error) {
	elems := make([]Value, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		sub, ok, err := valueOf(rv.Index(i))
		if err != nil {
			return Value{}, false, err
		}
		if ok {
			elems = append(elems, sub)
		}
	}
	return Sequence(elems...), true, nil
}

// marshalLeaf renders a leaf value as scalar text. ok is false when rv is
// not a leaf.
func marshalLeaf(rv reflect.Value) (string, bool, error) {
	if rv.CanInterface() {
		if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			return string(b), true, err
		}
	}
	if rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			return string(b), true, err
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true, nil
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'f', -1, rv.Type().Bits()), true, nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true, nil
		}
	}
	return "", false, nil
}

func marshalMapKey(rv reflect.Value) (string, error) {
	text, ok, err := marshalLeaf(rv)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("urlform: cannot encode map key of type %s", rv.Type())
	}
	return text, nil
}

// EncodeValue serializes a mapping-rooted [Value] tree into form-urlencoded
// text. Mapping keys are emitted in sorted order so output is deterministic;
// sequence elements keep their order through "[]" append keys.
func EncodeValue(root Value) (string, error) {
	if root.kind != KindMapping {
		return "", fmt.Errorf("urlform: root value must be a mapping, got %s", root.kind)
	}
	var pairs []string
	if err := encodeNode(&pairs, "", root); err != nil {
		return "", err
	}
	return strings.Join(pairs, "&"), nil
}

func encodeNode(pairs *[]string, prefix string, v Value) error {
	switch v.kind {
	case KindScalar:
		if prefix == "" {
			return fmt.Errorf("urlform: scalar at root cannot be encoded")
		}
		*pairs = append(*pairs, prefix+"="+url.QueryEscape(v.scalar))
		return nil
	case KindSequence:
		for _, e := range v.seq {
			if err := encodeNode(pairs, prefix+"[]", e); err != nil {
				return err
			}
		}
		return nil
	case KindMapping:
		for _, key := range v.Keys() {
			sub := v.fields[key]
			var p string
			if prefix == "" {
				p = url.QueryEscape(key)
			} else {
				p = prefix + "[" + url.QueryEscape(key) + "]"
			}
			if err := encodeNode(pairs, p, sub); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("urlform: unknown value kind %d", v.kind)
	}
}

// isEmptyValue mirrors the omitempty convention of the stdlib encoders.
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return rv.IsZero()
	}
	return false
}
