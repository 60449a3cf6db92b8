// internal/discovery/errors.go
package discovery

import (
	"errors"
	"fmt"
)

// Decode failure kinds. All are terminal for one decode attempt.
var (
	// ErrTransportFailure indicates the transport reported an error or a nonzero status.
	ErrTransportFailure = errors.New("transport failure")

	// ErrMalformedHeader indicates the header does not fit the response buffer.
	ErrMalformedHeader = errors.New("malformed discovery header")

	// ErrTruncatedRecord indicates a feature record runs past the valid region.
	ErrTruncatedRecord = errors.New("truncated feature record")
)

// Error codes reported through Code().
// Transport failures carry the raw transport status in the low byte.
const (
	CodeTransportFailure uint16 = 0x0100
	CodeMalformedHeader  uint16 = 0x0200
	CodeTruncatedRecord  uint16 = 0x0300
)

// DecodeError describes why a discovery decode failed.
type DecodeError struct {
	Kind   error // ErrTransportFailure, ErrMalformedHeader or ErrTruncatedRecord
	Offset int   // byte offset in the response where decoding stopped
	Status uint8 // transport status (transport failures only)
	Err    error // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrTransportFailure) && e.Err != nil:
		return fmt.Sprintf("discovery: %v: status=0x%02x: %v", e.Kind, e.Status, e.Err)
	case errors.Is(e.Kind, ErrTransportFailure):
		return fmt.Sprintf("discovery: %v: status=0x%02x", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("discovery: %v at offset %d: %v", e.Kind, e.Offset, e.Err)
	default:
		return fmt.Sprintf("discovery: %v at offset %d", e.Kind, e.Offset)
	}
}

// Unwrap exposes both the failure kind and the cause to errors.Is / errors.As.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code returns a compact numeric code for status memory.
func (e *DecodeError) Code() uint16 {
	switch {
	case errors.Is(e.Kind, ErrTransportFailure):
		return CodeTransportFailure | uint16(e.Status)
	case errors.Is(e.Kind, ErrMalformedHeader):
		return CodeMalformedHeader
	case errors.Is(e.Kind, ErrTruncatedRecord):
		return CodeTruncatedRecord
	default:
		return 1
	}
}

func malformed(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: ErrMalformedHeader, Offset: offset, Err: fmt.Errorf(format, args...)}
}

func truncated(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: ErrTruncatedRecord, Offset: offset, Err: fmt.Errorf(format, args...)}
}
