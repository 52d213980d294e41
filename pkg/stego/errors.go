package stego

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind (or the sentinels below) rather than
// matching error strings.
type Kind string

const (
	KindCapacity Kind = "Capacity" // payload plus terminator exceeds carrier capacity
	KindDecode   Kind = "Decode"   // input bytes are not a decodable image
	KindNotFound Kind = "NotFound" // no terminator in the scanned bits
	KindEncoding Kind = "Encoding" // payload character outside the single-byte range
	KindEncode   Kind = "Encode"   // writing the output container failed
)

// Sentinels matched by errors.Is against any *Error of the same Kind.
var (
	ErrCapacityExceeded = &Error{Kind: KindCapacity, Message: "stego: payload too long for carrier capacity"}
	ErrImageDecode      = &Error{Kind: KindDecode, Message: "stego: image decode failed"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "stego: no payload found"}
	ErrInvalidChar      = &Error{Kind: KindEncoding, Message: "stego: character outside single-byte range"}
)

// Error is the codec's structured error type.
//
// Need and Have are set for KindCapacity (bit counts). Rune and Index are
// set for KindEncoding.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	Need, Have int
	Rune       rune
	Index      int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports a match for any *Error of the same Kind, so callers can write
// errors.Is(err, stego.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

func capacityError(need, have int) error {
	return &Error{
		Kind:    KindCapacity,
		Message: fmt.Sprintf("stego: payload needs %d bits, carrier holds %d", need, have),
		Need:    need,
		Have:    have,
	}
}

func encodingError(r rune, index int) error {
	return &Error{
		Kind:    KindEncoding,
		Message: fmt.Sprintf("stego: character %q (U+%04X) at index %d is outside the single-byte range", r, r, index),
		Rune:    r,
		Index:   index,
	}
}

func wrapError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsNotFound reports whether err is the "no payload" outcome.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }
