package urlform

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Decoding Engine
///////////////////////////////////////////////////////////////////////////////

// Unmarshaler is the interface implemented by types that can decode
// themselves from a form value tree. UnmarshalForm is invoked exactly once
// per recursion level with a [Decoder] positioned at the type's own node; the
// implementation asks the decoder for whichever container view matches its
// shape and pulls its fields, elements, or scalar value out of it.
type Unmarshaler interface {
	UnmarshalForm(d *Decoder) error
}

// Decoder is the per-recursion-level engine over one [Value] node. It is a
// lightweight, ephemeral view: a fresh Decoder is created for every step of
// the recursive descent, carrying the node and the path walked so far, and is
// never reused after the call that owns it returns.
type Decoder struct {
	value Value
	path  Path
	conv  *ConverterRegistry
}

// NewDecoder returns a root Decoder over v with an empty path, using the
// global converter registry.
func NewDecoder(v Value) *Decoder {
	return &Decoder{value: v}
}

// NewDecoderWith returns a root Decoder over v whose decodes consult
// converters before the global registry. The registry propagates to every
// container view and sub-decoder handed out during the descent.
func NewDecoderWith(v Value, converters *ConverterRegistry) *Decoder {
	return &Decoder{value: v, conv: converters}
}

func newDecoderAt(v Value, p Path, conv *ConverterRegistry) *Decoder {
	return &Decoder{value: v, path: p, conv: conv}
}

// Value returns the tree node this Decoder is positioned at.
func (d *Decoder) Value() Value { return d.value }

// Path returns the path walked from the root to this Decoder's node.
func (d *Decoder) Path() Path { return d.path }

// Mapping returns a mapping container over the current node. It fails with
// [ErrShapeMismatch] if the node is not a mapping.
func (d *Decoder) Mapping() (*MappingDecoder, error) {
	if d.value.kind != KindMapping {
		return nil, shapeMismatch(d.path, KindMapping, d.value.kind)
	}
	return &MappingDecoder{fields: d.value.fields, path: d.path, conv: d.conv}, nil
}

// Sequence returns a sequence container over the current node. It fails with
// [ErrShapeMismatch] if the node is not a sequence.
func (d *Decoder) Sequence() (*SequenceDecoder, error) {
	if d.value.kind != KindSequence {
		return nil, shapeMismatch(d.path, KindSequence, d.value.kind)
	}
	return &SequenceDecoder{elems: d.value.seq, path: d.path, conv: d.conv}, nil
}

// Scalar returns a scalar container over the current node. Unlike Mapping
// and Sequence this never fails: any node can be asked to decode itself as a
// single value.
func (d *Decoder) Scalar() *ScalarDecoder {
	return &ScalarDecoder{value: d.value, path: d.path, conv: d.conv}
}

// Decode decodes the whole current node into dest, which must be a non-nil
// pointer.
func (d *Decoder) Decode(dest any) error {
	rv, err := destValue(dest)
	if err != nil {
		return decodeErr(d.path, err)
	}
	return decodeValue(d.value, d.path, rv, d.conv)
}

// destValue validates a caller-supplied destination and returns its
// reflect.Value.
func destValue(dest any) (reflect.Value, error) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w, got %T", ErrInvalidUnmarshal, dest)
	}
	return rv, nil
}

// decodeValue is the single recursion point of the engine. A registered
// converter is checked before anything else, so it overrides even the
// destination type's own [Unmarshaler]; then the type is offered the chance
// to build itself via UnmarshalForm; then the remaining leaf hooks
// (encoding.TextUnmarshaler, built-in scalar kinds); everything else falls
// through to the reflection-driven structural decode.
func decodeValue(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if _, ok := lookupConverter(conv, rv.Type()); ok {
		return convertLeaf(v, p, rv, conv)
	}

	if u, ok := asUnmarshaler(rv); ok {
		return decodeErr(p, u.UnmarshalForm(newDecoderAt(v, p, conv)))
	}

	if isLeafType(rv.Type(), conv) {
		return convertLeaf(v, p, rv, conv)
	}

	return bindValue(v, p, rv, conv)
}

// asUnmarshaler reports whether rv's type (or its pointer) implements
// [Unmarshaler]. Resolution happens through static interface dispatch per
// concrete type; no type identity registry is consulted.
func asUnmarshaler(rv reflect.Value) (Unmarshaler, bool) {
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	if rv.CanInterface() {
		if u, ok := rv.Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	return nil, false
}

// convertLeaf applies the leaf conversion capability to v. Conversion only
// reads scalar text; a repeated plain key ("a=1&a=2") parses as a sequence,
// in which case the first element is used, matching how query parameters are
// conventionally picked.
func convertLeaf(v Value, p Path, rv reflect.Value, conv *ConverterRegistry) error {
	switch v.kind {
	case KindScalar:
		if err := convertScalar(rv, v.scalar, conv); err != nil {
			return notConvertible(p, v.scalar, err)
		}
		return nil
	case KindSequence:
		if len(v.seq) > 0 && v.seq[0].kind == KindScalar {
			first := v.seq[0]
			if err := convertScalar(rv, first.scalar, conv); err != nil {
				return notConvertible(p.Index(0), first.scalar, err)
			}
			return nil
		}
		return notConvertible(p, "", fmt.Errorf("cannot convert %s to %s", v.kind, rv.Type()))
	default:
		return notConvertible(p, "", fmt.Errorf("cannot convert %s to %s", v.kind, rv.Type()))
	}
}
