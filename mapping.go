package urlform

import "reflect"

///////////////////////////////////////////////////////////////////////////////
// Mapping Container
///////////////////////////////////////////////////////////////////////////////

// MappingDecoder is the container view over a mapping node. It is handed out
// by [Decoder.Mapping] and pulled on by destination types that decode a
// fixed or dynamic set of named fields.
type MappingDecoder struct {
	fields map[string]Value
	path   Path
	conv   *ConverterRegistry
}

// Has reports whether the mapping contains key. It never fails: Has(k) is
// true exactly when Field(k, ...) would not fail with [ErrMissingField].
func (m *MappingDecoder) Has(key string) bool {
	_, ok := m.fields[key]
	return ok
}

// Keys returns the sorted field names present in the mapping. Destination
// types with an open field set (string-keyed maps) iterate these instead of
// a fixed schema.
func (m *MappingDecoder) Keys() []string {
	return Mapping(m.fields).Keys()
}

// Field decodes the value under key into dest. An absent key fails with
// [ErrMissingField] naming the full path including key. A present key is
// decoded with the path extended by key: leaf-convertible destinations are
// converted directly from the looked-up value, everything else recurses
// through a fresh [Decoder] over it, to any nesting depth.
func (m *MappingDecoder) Field(key string, dest any) error {
	rv, err := destValue(dest)
	if err != nil {
		return decodeErr(m.path, err)
	}
	return m.decodeField(key, rv)
}

func (m *MappingDecoder) decodeField(key string, rv reflect.Value) error {
	sub, ok := m.fields[key]
	if !ok {
		return missingField(m.path, key)
	}
	return decodeValue(sub, m.path.Field(key), rv, m.conv)
}

// Mapping returns a nested mapping container for key. It fails with
// [ErrMissingField] if the key is absent and [ErrShapeMismatch] if the value
// under it is not a mapping.
func (m *MappingDecoder) Mapping(key string) (*MappingDecoder, error) {
	d, err := m.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Mapping()
}

// Sequence returns a nested sequence container for key, with the same
// absence and shape failure modes as Mapping.
func (m *MappingDecoder) Sequence(key string) (*SequenceDecoder, error) {
	d, err := m.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Sequence()
}

// Decoder returns a fresh [Decoder] over the value under key, for callers
// that want to delegate construction rather than decode a typed field. It
// fails with [ErrMissingField] if the key is absent.
func (m *MappingDecoder) Decoder(key string) (*Decoder, error) {
	sub, ok := m.fields[key]
	if !ok {
		return nil, missingField(m.path, key)
	}
	return newDecoderAt(sub, m.path.Field(key), m.conv), nil
}

// Self re-wraps the whole mapping in a fresh [Decoder] at the same path, an
// escape hatch for delegating construction to a different type at the same
// position.
func (m *MappingDecoder) Self() *Decoder {
	return newDecoderAt(Mapping(m.fields), m.path, m.conv)
}
