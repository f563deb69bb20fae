package urlform

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// HTTP request source
///////////////////////////////////////////////////////////////////////////////

// UnmarshalRequest decodes an HTTP request into the value pointed to by v,
// with default parse options. The query string and the request body are
// merged into a single tree, body keys taking precedence; urlencoded bodies
// go through the form parser and JSON bodies through [ValueFromJSON],
// selected by Content-Type.
func UnmarshalRequest(r *http.Request, v any) error {
	return UnmarshalRequestWith(r, v, ParseOpts{})
}

// UnmarshalRequestWith is [UnmarshalRequest] with explicit parse options.
func UnmarshalRequestWith(r *http.Request, v any, opts ParseOpts) error {
	root, err := RequestValue(r, opts)
	if err != nil {
		return err
	}
	return DecodeValue(root, v)
}

// RequestValue builds the merged [Value] tree for an HTTP request without
// decoding it, for callers that drive a [Decoder] themselves.
func RequestValue(r *http.Request, opts ParseOpts) (Value, error) {
	query, err := Parse(r.URL.RawQuery, opts)
	if err != nil {
		return Value{}, fmt.Errorf("error parsing query string: %w", err)
	}

	body, err := requestBodyValue(r, opts)
	if err != nil {
		return Value{}, err
	}

	return mergeMappings(query, body), nil
}

func requestBodyValue(r *http.Request, opts ParseOpts) (Value, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return Mapping(nil), nil
	}

	contentType := r.Header.Get("Content-Type")
	if i := strings.Index(contentType, ContentTypeDelimiter); i != -1 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)

	switch contentType {
	case ContentTypeFormURLEncoded, "":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return Value{}, fmt.Errorf("failed to read request body: %w", err)
		}
		return Parse(string(body), opts)
	case ContentTypeApplicationJSON:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return Value{}, fmt.Errorf("failed to read request body: %w", err)
		}
		return ValueFromJSON(body)
	default:
		// Unknown body encodings decode from the query string alone.
		return Mapping(nil), nil
	}
}

// mergeMappings overlays over onto base. Nested mappings merge recursively;
// any other collision is won by over.
func mergeMappings(base, over Value) Value {
	if base.kind != KindMapping || over.kind != KindMapping {
		return over
	}
	merged := make(map[string]Value, len(base.fields)+len(over.fields))
	for name, v := range base.fields {
		merged[name] = v
	}
	for name, v := range over.fields {
		if existing, ok := merged[name]; ok && existing.kind == KindMapping && v.kind == KindMapping {
			merged[name] = mergeMappings(existing, v)
			continue
		}
		merged[name] = v
	}
	return Mapping(merged)
}
