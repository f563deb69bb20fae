package urlform

import (
	"reflect"
	"strings"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// Struct Tags
///////////////////////////////////////////////////////////////////////////////

// fieldTag is the decoded `form` tag of one struct field.
//
// Example: Name string `form:"name,omitempty"`
type fieldTag struct {
	Name      string
	OmitEmpty bool
	Ignore    bool
}

// cache of struct tags to avoid re-parsing the same struct type across
// decodes. Keyed by reflect.Type; safe for concurrent use.
var _structTagCache sync.Map // map[reflect.Type][]fieldTag

// fieldTags returns the decoded `form` tags for every field of struct type
// t, in field order. Unexported fields are marked Ignore. Fields without a
// tag use the Go field name.
func fieldTags(t reflect.Type) []fieldTag {
	if cached, ok := _structTagCache.Load(t); ok {
		return cached.([]fieldTag)
	}

	tags := make([]fieldTag, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			tags[i] = fieldTag{Ignore: true}
			continue
		}
		tag := parseFieldTag(f.Tag.Get(FormTagName))
		if !tag.Ignore && tag.Name == "" {
			tag.Name = f.Name
		}
		tags[i] = tag
	}

	_structTagCache.Store(t, tags)
	return tags
}

// parseFieldTag decodes a single `form` tag string: a name, "-" to ignore,
// and comma-separated modifiers.
func parseFieldTag(raw string) fieldTag {
	raw = strings.TrimSpace(raw)
	if raw == IgnoreTagModifier {
		return fieldTag{Ignore: true}
	}

	parts := strings.Split(raw, ",")
	tag := fieldTag{Name: strings.TrimSpace(parts[0])}
	if tag.Name == IgnoreTagModifier {
		return fieldTag{Ignore: true}
	}

	for _, part := range parts[1:] {
		switch strings.TrimSpace(part) {
		case OmitEmptyTagModifier:
			tag.OmitEmpty = true
		}
	}
	return tag
}
