package urlform

import (
	"fmt"

	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// JSON source
///////////////////////////////////////////////////////////////////////////////

// ValueFromJSON parses a JSON object into a [Value] tree, so JSON request
// bodies can feed the same decoding engine as form text: objects become
// mappings, arrays sequences, and every JSON scalar (string, number, bool)
// its textual form. JSON null becomes an empty scalar; the tree has no null
// variant.
//
// The top-level JSON value must be an object, matching the parser contract
// that the root is always a mapping.
func ValueFromJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Value{}, fmt.Errorf("%w: top-level JSON value must be an object", ErrMalformedInput)
	}
	return valueFromResult(root), nil
}

// DecodeJSON parses JSON data and decodes it into the value pointed to by v
// through the form decoding engine.
func DecodeJSON(data []byte, v any) error {
	root, err := ValueFromJSON(data)
	if err != nil {
		return err
	}
	return DecodeValue(root, v)
}

func valueFromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		fields := map[string]Value{}
		r.ForEach(func(key, val gjson.Result) bool {
			fields[key.String()] = valueFromResult(val)
			return true
		})
		return Mapping(fields)
	case r.IsArray():
		arr := r.Array()
		elems := make([]Value, len(arr))
		for i, e := range arr {
			elems[i] = valueFromResult(e)
		}
		return Sequence(elems...)
	default:
		return Scalar(r.String())
	}
}
