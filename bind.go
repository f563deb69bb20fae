package urlform

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Reflection fallback
///////////////////////////////////////////////////////////////////////////////

// bindValue decodes v into a destination that implements neither the leaf
// conversion capability nor [Unmarshaler]. It is itself a client of the
// container views: structs and maps pull from a mapping container, slices
// and arrays from a sequence container, so every structural decode exercises
// the same engine surface a hand-written Unmarshaler would.
func bindValue(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	switch rv.Kind() {
	case reflect.Struct:
		return bindStruct(v, p, rv, conv)
	case reflect.Map:
		return bindMap(v, p, rv, conv)
	case reflect.Slice:
		return bindSlice(v, p, rv, conv)
	case reflect.Array:
		return bindArray(v, p, rv, conv)
	case reflect.Interface:
		return bindAny(v, p, rv)
	default:
		return decodeErr(p, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type()))
	}
}

// bindStruct decodes a mapping node into a struct field by field, matched
// through the `form` tags. Keys are required by default: an absent key for a
// non-pointer field without `omitempty` fails with [ErrMissingField].
func bindStruct(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	md, err := newDecoderAt(v, p, conv).Mapping()
	if err != nil {
		return err
	}

	tags := fieldTags(rv.Type())
	for i, tag := range tags {
		if tag.Ignore {
			continue
		}
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		if !md.Has(tag.Name) {
			// Pointer fields are optional by shape: nil is "absent".
			if tag.OmitEmpty || field.Kind() == reflect.Pointer {
				continue
			}
			return missingField(p, tag.Name)
		}

		if err := md.decodeField(tag.Name, field); err != nil {
			return err
		}
	}
	return nil
}

// bindMap decodes a mapping node into a map with an open key set. Keys that
// cannot be converted into the map's key type are filtered out rather than
// failing the decode.
func bindMap(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	md, err := newDecoderAt(v, p, conv).Mapping()
	if err != nil {
		return err
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}

	keyType := rv.Type().Key()
	elemType := rv.Type().Elem()
	for _, key := range md.Keys() {
		kv := reflect.New(keyType).Elem()
		if err := convertScalar(kv, key, conv); err != nil {
			continue
		}
		ev := reflect.New(elemType).Elem()
		if err := md.decodeField(key, ev); err != nil {
			return err
		}
		rv.SetMapIndex(kv, ev)
	}
	return nil
}

// bindSlice decodes a sequence node into a slice, preserving element order.
// A single scalar decodes as a one-element slice, matching how a repeated
// query key degrades to a plain one when sent once.
func bindSlice(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	elemType := rv.Type().Elem()

	if v.kind == KindScalar {
		ev := reflect.New(elemType).Elem()
		if err := decodeValue(v, p, ev, conv); err != nil {
			return err
		}
		rv.Set(reflect.Append(reflect.MakeSlice(rv.Type(), 0, 1), ev))
		return nil
	}

	sd, err := newDecoderAt(v, p, conv).Sequence()
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(rv.Type(), 0, sd.Len())
	for sd.More() {
		ev := reflect.New(elemType).Elem()
		if err := sd.decodeNext(ev); err != nil {
			return err
		}
		out = reflect.Append(out, ev)
	}
	rv.Set(out)
	return nil
}

// bindArray decodes a sequence node into a fixed-size array. The sequence
// must not hold more elements than the array does. A single scalar fills the
// first element, the same promotion bindSlice applies.
func bindArray(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	if v.kind == KindScalar {
		if rv.Len() == 0 {
			return decodeErr(p, fmt.Errorf(
				"%w: sequence has 1 element, array holds 0", ErrIndexOutOfRange))
		}
		return decodeValue(v, p, rv.Index(0), conv)
	}

	sd, err := newDecoderAt(v, p, conv).Sequence()
	if err != nil {
		return err
	}
	if sd.Len() > rv.Len() {
		return decodeErr(p, fmt.Errorf(
			"%w: sequence has %d elements, array holds %d", ErrIndexOutOfRange, sd.Len(), rv.Len()))
	}

	for i := 0; sd.More(); i++ {
		if err := sd.decodeNext(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// bindAny materializes a node into an empty interface: scalars become
// strings, sequences []any, mappings map[string]any.
func bindAny(v Value, p Path, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return decodeErr(p, fmt.Errorf(
			"%w: cannot decode into non-empty interface %s", ErrUnsupportedType, rv.Type()))
	}
	rv.Set(reflect.ValueOf(materialize(v)))
	return nil
}

func materialize(v Value) any {
	switch v.kind {
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = materialize(e)
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.fields))
		for name, f := range v.fields {
			out[name] = materialize(f)
		}
		return out
	default:
		return v.scalar
	}
}
