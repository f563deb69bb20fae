// Package urlform (URL Form) decodes percent-encoded,
// application/x-www-form-urlencoded key/value text into strongly-typed Go
// values, and encodes the reverse direction.
//
// The package is built around a small, untyped tree representation ([Value])
// produced by the parser: every decoded form is a mapping of names to values,
// where each value is either a single scalar string, an ordered sequence, or
// a nested mapping (bracket notation such as "a[b][]=1" builds the nesting).
//
// Decoding is driven by the destination type, not by the tree. A [Decoder]
// wraps one tree node and hands out exactly one of three container views:
//   - [MappingDecoder]: "does key K exist", "decode field K", nested access
//   - [SequenceDecoder]: forward-only cursor over ordered elements
//   - [ScalarDecoder]: "decode this whole value directly"
//
// Any type may implement [Unmarshaler] to pull its own fields out of these
// containers; types that do not are decoded structurally by reflection using
// the same containers. Leaf types (primitives, time.Time, uuid.UUID, anything
// implementing encoding.TextUnmarshaler, or a type registered through
// [RegisterConverter]) are converted directly from the scalar text and never
// go through structural decoding. The resolution order at every level is:
// registered converter (per-call registry before the global one), then
// UnmarshalForm, then TextUnmarshaler and the built-in scalar kinds — so a
// registered converter overrides a type's own UnmarshalForm, and
// UnmarshalForm overrides the implicit conversion a string or int kind would
// otherwise get. A per-call registry is supplied through [NewDecoderWith] or
// [DecodeValueWith].
//
// To use the package, you may use the exported methods:
//   - Unmarshal() / DecodeString(): Parse and decode in one step
//   - Marshal(): Encode a Go value back to form text
//   - UnmarshalRequest(): Decode query string and body of an *http.Request
//   - RegisterConverter(): Register a custom scalar converter for a type
//
// Struct fields are matched by the `form` tag:
//
//	type Login struct {
//	    Name string `form:"name"`
//	    Age  int    `form:"age,omitempty"`
//	}
//
// Fields are required by default; `omitempty` and pointer fields make a key
// optional. Every decode failure carries the path to the offending node
// (for example `user.addresses[2].zip`), and the first failure aborts the
// walk with no partial result.
package urlform
