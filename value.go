package urlform

import "sort"

///////////////////////////////////////////////////////////////////////////////
// Value
///////////////////////////////////////////////////////////////////////////////

// Kind identifies one of the three variants a [Value] can hold.
type Kind uint8

const (
	// KindScalar is a single decoded string.
	KindScalar Kind = iota
	// KindSequence is an ordered list of values. Order is meaningful
	// and preserved through decoding.
	KindSequence
	// KindMapping is a set of uniquely named values.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is the untyped tree produced by [Parse] and consumed by the decoding
// engine. A Value is one of three variants: a scalar string, an ordered
// sequence of values, or a mapping of names to values.
//
// Values are immutable once constructed: decoding only ever reads them, so a
// single tree may safely back any number of concurrent decodes.
type Value struct {
	kind   Kind
	scalar string
	seq    []Value
	fields map[string]Value
}

// Scalar returns a scalar Value holding text.
func Scalar(text string) Value {
	return Value{kind: KindScalar, scalar: text}
}

// Sequence returns a sequence Value over elems. The slice is retained, not
// copied; callers must not mutate it afterwards.
func Sequence(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

// Mapping returns a mapping Value over fields. The map is retained, not
// copied; callers must not mutate it afterwards.
func Mapping(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMapping, fields: fields}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// Text returns the scalar text. It is only meaningful for KindScalar values.
func (v Value) Text() string { return v.scalar }

// Elems returns the ordered elements of a sequence Value, or nil for other
// kinds. The returned slice must not be mutated.
func (v Value) Elems() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Field looks up a named value in a mapping Value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Keys returns the sorted field names of a mapping Value, or nil for other
// kinds. Sorting keeps error messages and encoding output deterministic.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of elements or fields, and 1 for a scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.fields)
	default:
		return 1
	}
}
