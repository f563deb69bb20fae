package urlform

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// constants for struct tag parsing
const (
	FormTagName = "form"

	OmitEmptyTagModifier = "omitempty"
	IgnoreTagModifier    = "-"
)

// Mime Type constants for content types and encodings.
const (
	ContentTypeApplicationJSON string = "application/json"
	ContentTypeFormURLEncoded  string = "application/x-www-form-urlencoded"
	ContentTypeDelimiter              = ";"
)

// reflect.TypeOf constants for type checks
var (
	StringType    = reflect.TypeOf("")
	ByteSliceType = reflect.TypeOf([]byte{})
	TimeType      = reflect.TypeOf(time.Time{})
	UUIDType      = reflect.TypeOf(uuid.UUID{})
)
