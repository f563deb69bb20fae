package urlform

import "reflect"

///////////////////////////////////////////////////////////////////////////////
// Sequence Container
///////////////////////////////////////////////////////////////////////////////

// SequenceDecoder is the container view over a sequence node. It carries a
// forward-only cursor: every successful pull (Next, Mapping, Sequence,
// Decoder) advances it by one, so repeated calls walk the elements in order.
// There is no random access and no rewind, and a failed pull leaves the
// cursor where it was.
//
// The cursor is the only mutable state in the engine; it is owned by exactly
// one call stack and never shared.
type SequenceDecoder struct {
	elems  []Value
	path   Path
	conv   *ConverterRegistry
	cursor int
}

// More reports whether elements remain past the cursor.
func (s *SequenceDecoder) More() bool {
	return s.cursor < len(s.elems)
}

// Len returns the total number of elements in the sequence.
func (s *SequenceDecoder) Len() int {
	return len(s.elems)
}

// Index returns the current cursor position.
func (s *SequenceDecoder) Index() int {
	return s.cursor
}

// Next decodes the element at the cursor into dest and advances the cursor.
// It fails with [ErrIndexOutOfRange] when the sequence is exhausted; decode
// failures carry the path extended by the element index.
func (s *SequenceDecoder) Next(dest any) error {
	rv, err := destValue(dest)
	if err != nil {
		return decodeErr(s.path, err)
	}
	return s.decodeNext(rv)
}

func (s *SequenceDecoder) decodeNext(rv reflect.Value) error {
	if !s.More() {
		return s.outOfRange()
	}
	if err := decodeValue(s.elems[s.cursor], s.path.Index(s.cursor), rv, s.conv); err != nil {
		return err
	}
	s.cursor++
	return nil
}

// Mapping returns a mapping container over the element at the cursor and
// advances the cursor. It fails with [ErrIndexOutOfRange] when exhausted and
// [ErrShapeMismatch] when the element is not a mapping.
func (s *SequenceDecoder) Mapping() (*MappingDecoder, error) {
	if !s.More() {
		return nil, s.outOfRange()
	}
	md, err := newDecoderAt(s.elems[s.cursor], s.path.Index(s.cursor), s.conv).Mapping()
	if err != nil {
		return nil, err
	}
	s.cursor++
	return md, nil
}

// Sequence returns a sequence container over the element at the cursor and
// advances the cursor, with the same failure modes as Mapping.
func (s *SequenceDecoder) Sequence() (*SequenceDecoder, error) {
	if !s.More() {
		return nil, s.outOfRange()
	}
	sd, err := newDecoderAt(s.elems[s.cursor], s.path.Index(s.cursor), s.conv).Sequence()
	if err != nil {
		return nil, err
	}
	s.cursor++
	return sd, nil
}

// Decoder returns a fresh [Decoder] over the element at the cursor and
// advances the cursor.
func (s *SequenceDecoder) Decoder() (*Decoder, error) {
	if !s.More() {
		return nil, s.outOfRange()
	}
	d := newDecoderAt(s.elems[s.cursor], s.path.Index(s.cursor), s.conv)
	s.cursor++
	return d, nil
}

func (s *SequenceDecoder) outOfRange() error {
	return &DecodeError{Path: s.path.Index(s.cursor), Err: ErrIndexOutOfRange}
}
