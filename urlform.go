package urlform

///////////////////////////////////////////////////////////////////////////////
// Public API
///////////////////////////////////////////////////////////////////////////////

// Unmarshal parses form-urlencoded data and decodes it into the value
// pointed to by v, with default parse options. The first failure — parser or
// engine — aborts the decode and is returned unchanged; there is no partial
// result and no error aggregation across sibling fields.
func Unmarshal(data []byte, v any) error {
	return UnmarshalWith(data, v, ParseOpts{})
}

// UnmarshalWith is [Unmarshal] with explicit parse options.
func UnmarshalWith(data []byte, v any, opts ParseOpts) error {
	root, err := Parse(string(data), opts)
	if err != nil {
		return err
	}
	return DecodeValue(root, v)
}

// DecodeString is a convenience function that parses the form data in the
// string and decodes it into the value pointed to by v.
func DecodeString(data string, v any) error {
	return Unmarshal([]byte(data), v)
}

// DecodeValue decodes an already-parsed [Value] tree into the value pointed
// to by v. Each call builds a fresh root [Decoder], so concurrent decodes of
// the same tree need no coordination.
func DecodeValue(root Value, v any) error {
	return NewDecoder(root).Decode(v)
}

// DecodeValueWith is [DecodeValue] with a per-call converter registry.
// Converters registered on it are consulted before the global registry for
// this decode only, leaving other decodes unaffected.
func DecodeValueWith(root Value, v any, converters *ConverterRegistry) error {
	return NewDecoderWith(root, converters).Decode(v)
}
