package urlform

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Base error types for the decode failure taxonomy. Every failure produced by
// the engine wraps exactly one of these, so callers can classify with
// errors.Is regardless of the path or detail text.
var (
	ErrMalformedInput   = errors.New("malformed form input")
	ErrShapeMismatch    = errors.New("value shape does not match destination")
	ErrMissingField     = errors.New("missing field")
	ErrIndexOutOfRange  = errors.New("sequence index out of range")
	ErrNotConvertible   = errors.New("value not convertible")
	ErrInvalidUnmarshal = errors.New("destination must be a non-nil pointer")
	ErrUnsupportedType  = errors.New("unsupported destination type")
)

// DecodeError is the error type returned by every failed decode. It carries
// the path to the tree node where the failure was detected; the wrapped error
// is one of the base error types above (possibly with extra detail).
type DecodeError struct {
	Path Path
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("urlform: %v at %s", e.Err, e.Path)
}

// Unwrap exposes the wrapped base error to errors.Is / errors.As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErr wraps err with the path at which it was detected. Errors that
// already carry a path pass through untouched so the innermost (most precise)
// path wins during recursive unwinding.
func decodeErr(p Path, err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Path: p, Err: err}
}

// shapeMismatch reports that the destination requested a want-shaped container
// over a got-shaped tree node.
func shapeMismatch(p Path, want, got Kind) error {
	return &DecodeError{
		Path: p,
		Err:  fmt.Errorf("%w: expected %s, got %s", ErrShapeMismatch, want, got),
	}
}

// missingField reports an absent required key. The path names the full
// lookup position including the key itself.
func missingField(p Path, key string) error {
	return &DecodeError{Path: p.Field(key), Err: ErrMissingField}
}

// notConvertible reports a leaf conversion failure for the given scalar text.
func notConvertible(p Path, text string, cause error) error {
	if cause != nil {
		return &DecodeError{
			Path: p,
			Err:  fmt.Errorf("%w: %q: %v", ErrNotConvertible, text, cause),
		}
	}
	return &DecodeError{
		Path: p,
		Err:  fmt.Errorf("%w: %q", ErrNotConvertible, text),
	}
}
