package urlform

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Leaf Conversion Capability
///////////////////////////////////////////////////////////////////////////////

// ConvertFunc builds a value of a registered type directly from scalar form
// text. The returned value must be assignable to the registered type.
type ConvertFunc func(text string) (any, error)

// ConverterRegistry maps concrete types to their scalar converters. A type
// with a registered converter is a leaf: it is always converted directly
// from scalar text and never decomposed field by field.
//
// The registry is safe for concurrent use.
type ConverterRegistry struct {
	converters sync.Map // map[reflect.Type]ConvertFunc
}

// NewConverterRegistry returns an empty registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{}
}

// Register installs fn as the converter for typ, replacing any previous one.
func (cr *ConverterRegistry) Register(typ reflect.Type, fn ConvertFunc) {
	cr.converters.Store(typ, fn)
}

func (cr *ConverterRegistry) lookup(typ reflect.Type) (ConvertFunc, bool) {
	if v, ok := cr.converters.Load(typ); ok {
		return v.(ConvertFunc), true
	}
	return nil, false
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _globalConverters = NewConverterRegistry()

func init() {
	_globalConverters.Register(TimeType, func(text string) (any, error) {
		return parseTimeValue(text)
	})
	_globalConverters.Register(UUIDType, func(text string) (any, error) {
		return uuid.Parse(text)
	})
}

// RegisterConverter registers a scalar converter for typ with the global
// registry used by all decodes.
func RegisterConverter(typ reflect.Type, fn ConvertFunc) {
	_globalConverters.Register(typ, fn)
}

// lookupConverter resolves typ against the per-call registry first, when one
// was supplied, then the global one. conv may be nil.
func lookupConverter(conv *ConverterRegistry, typ reflect.Type) (ConvertFunc, bool) {
	if conv != nil {
		if fn, ok := conv.lookup(typ); ok {
			return fn, true
		}
	}
	return _globalConverters.lookup(typ)
}

///////////////////////////////////////////////////////////////////////////////
// Capability resolution
///////////////////////////////////////////////////////////////////////////////

var _textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// isLeafType reports whether t carries the leaf conversion capability:
// a registered converter, encoding.TextUnmarshaler, or one of the built-in
// scalar kinds. Leaf types skip structural decoding entirely.
func isLeafType(t reflect.Type, conv *ConverterRegistry) bool {
	if _, ok := lookupConverter(conv, t); ok {
		return true
	}
	if t.Implements(_textUnmarshalerType) || reflect.PointerTo(t).Implements(_textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	default:
		return false
	}
}

// convertScalar sets rv from scalar form text.
//
// Currently supports:
//   - registered converters (time.Time and uuid.UUID by default)
//   - TextUnmarshaler support for custom types
//   - string to string
//   - string to int/uint (with overflow checking)
//   - string to float/complex (with overflow checking)
//   - string to bool (common textual forms)
//   - string to []byte (raw byte slice)
func convertScalar(rv reflect.Value, text string, conv *ConverterRegistry) error {
	if fn, ok := lookupConverter(conv, rv.Type()); ok {
		out, err := fn(text)
		if err != nil {
			return err
		}
		ov := reflect.ValueOf(out)
		if !ov.Type().AssignableTo(rv.Type()) {
			return fmt.Errorf("converter for %s returned %T", rv.Type(), out)
		}
		rv.Set(ov)
		return nil
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(text))
		}
	}
	if rv.CanInterface() {
		if u, ok := rv.Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(text))
		}
	}

	if text == "" {
		return setEmptyValue(rv)
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(text)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntValue(rv, text)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return setUintValue(rv, text)
	case reflect.Float32, reflect.Float64:
		return setFloatValue(rv, text)
	case reflect.Complex64, reflect.Complex128:
		return setComplexValue(rv, text)
	case reflect.Bool:
		return setBoolValue(rv, text)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			rv.SetBytes([]byte(text))
			return nil
		}
		return fmt.Errorf("unsupported slice type: %s", rv.Type())
	default:
		return fmt.Errorf("unsupported leaf type: %s", rv.Type())
	}
}

// setEmptyValue handles empty scalar text for different destination kinds.
func setEmptyValue(rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString("")
		return nil
	case reflect.Slice, reflect.Map, reflect.Interface:
		rv.SetZero()
		return nil
	default:
		return fmt.Errorf("cannot set empty value for type: %s", rv.Type())
	}
}

// setIntValue sets integer values with overflow checking
func setIntValue(rv reflect.Value, text string) error {
	intValue, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to int: %w", err)
	}

	if rv.OverflowInt(intValue) {
		return fmt.Errorf("value %d overflows %s", intValue, rv.Type())
	}

	rv.SetInt(intValue)
	return nil
}

// setUintValue sets unsigned integer values with overflow checking
func setUintValue(rv reflect.Value, text string) error {
	uintValue, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to uint: %w", err)
	}

	if rv.OverflowUint(uintValue) {
		return fmt.Errorf("value %d overflows %s", uintValue, rv.Type())
	}

	rv.SetUint(uintValue)
	return nil
}

// setFloatValue sets float values with overflow checking
func setFloatValue(rv reflect.Value, text string) error {
	floatValue, err := strconv.ParseFloat(text, rv.Type().Bits())
	if err != nil {
		return fmt.Errorf("error converting value to float: %w", err)
	}

	if rv.OverflowFloat(floatValue) {
		return fmt.Errorf("value %f overflows %s", floatValue, rv.Type())
	}

	rv.SetFloat(floatValue)
	return nil
}

// setComplexValue sets complex values
func setComplexValue(rv reflect.Value, text string) error {
	complexValue, err := strconv.ParseComplex(text, rv.Type().Bits())
	if err != nil {
		return fmt.Errorf("error converting value to complex: %w", err)
	}

	if rv.OverflowComplex(complexValue) {
		return fmt.Errorf("value %v overflows %s", complexValue, rv.Type())
	}

	rv.SetComplex(complexValue)
	return nil
}

// setBoolValue sets boolean values
//
// Many common boolean representations are supported:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//   - Standard boolean parsing using strconv.ParseBool
func setBoolValue(rv reflect.Value, text string) error {
	switch text {
	case "true", "1", "yes", "on", "True", "TRUE", "YES", "ON":
		rv.SetBool(true)
		return nil
	case "false", "0", "no", "off", "False", "FALSE", "NO", "OFF":
		rv.SetBool(false)
		return nil
	default:
		boolValue, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("error converting value to bool: %w", err)
		}
		rv.SetBool(boolValue)
		return nil
	}
}

// parseTimeValue parses time.Time from RFC3339 first, then a set of common
// fallback layouts.
func parseTimeValue(text string) (time.Time, error) {
	timeValue, err := time.Parse(time.RFC3339, text)
	if err == nil {
		return timeValue, nil
	}

	formats := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"15:04:05",
	}
	for _, format := range formats {
		if timeValue, err = time.Parse(format, text); err == nil {
			return timeValue, nil
		}
	}

	return time.Time{}, fmt.Errorf("error converting value to time.Time: %w", err)
}
