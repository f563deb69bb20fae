package urlform

///////////////////////////////////////////////////////////////////////////////
// Scalar Container
///////////////////////////////////////////////////////////////////////////////

// ScalarDecoder is the container view for "treat this node as a single
// value" access. Unlike the mapping and sequence containers it can be
// obtained over any node: it is the whole remaining tree at its path, not a
// sub-value of it.
type ScalarDecoder struct {
	value Value
	path  Path
	conv  *ConverterRegistry
}

// Decode decodes the node into dest. Leaf-convertible destinations are
// converted directly from the scalar text, failing with [ErrNotConvertible]
// on malformed text. Composite destinations recurse through a fresh
// [Decoder] over the same node, so a struct can still be decoded even when
// the caller only had scalar access to this position.
func (s *ScalarDecoder) Decode(dest any) error {
	rv, err := destValue(dest)
	if err != nil {
		return decodeErr(s.path, err)
	}
	return decodeValue(s.value, s.path, rv, s.conv)
}

// Text returns the raw scalar text, or "" for non-scalar nodes.
func (s *ScalarDecoder) Text() string {
	if s.value.kind != KindScalar {
		return ""
	}
	return s.value.scalar
}

// IsNull always reports false: the tree has no null variant, so absence of a
// key is the only way to express "no value", and that is observable at the
// mapping and sequence level, never here.
func (s *ScalarDecoder) IsNull() bool {
	return false
}
