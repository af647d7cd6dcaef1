package nbt

import (
	"errors"
	"fmt"
)

// Sentinel kinds for binary codec failures. They are always wrapped in a
// *DecodeError (reading) or *EncodeError (writing) carrying context, and
// can be tested with errors.Is.
var (
	// ErrUnexpectedEOF marks a truncated or empty byte stream.
	ErrUnexpectedEOF = errors.New("unexpected end of data")
	// ErrInvalidTagID marks an unknown tag id byte, or an End id where a
	// value was required.
	ErrInvalidTagID = errors.New("invalid tag id")
	// ErrInvalidLength marks a negative array, list, or string length.
	ErrInvalidLength = errors.New("invalid length prefix")
	// ErrInvalidMUTF8 marks a byte sequence that is not well-formed
	// modified UTF-8.
	ErrInvalidMUTF8 = errors.New("invalid modified UTF-8")
	// ErrDepthExceeded marks a document nested deeper than the
	// configured limit.
	ErrDepthExceeded = errors.New("nesting depth limit exceeded")
	// ErrStringTooLong marks a string whose modified UTF-8 form exceeds
	// the 16-bit length field on write.
	ErrStringTooLong = errors.New("string exceeds 65535 encoded bytes")
	// ErrHeterogeneousList marks a list whose elements do not all share
	// the declared element type.
	ErrHeterogeneousList = errors.New("heterogeneous list")
)

// TypeError reports a tag viewed as, or inserted where the container
// established, a different variant.
type TypeError struct {
	Expected TagID
	Actual   TagID
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("nbt: expected %s tag, got %s", e.Expected, e.Actual)
}

// IndexError reports an out-of-range list index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("nbt: index %d out of bounds (len=%d)", e.Index, e.Len)
}

// DecodeError reports a malformed binary document. Offset is the
// absolute byte position at which the violation was detected.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbt: decode failed at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a tree that cannot be represented on the wire.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("nbt: encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// SyntaxError reports malformed SNBT text. Offset is the byte offset into
// the input; Line and Col are 1-based. Segment holds the text around the
// offending position for diagnostics.
type SyntaxError struct {
	Offset  int
	Line    int
	Col     int
	Segment string
	Msg     string
}

func (e *SyntaxError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("nbt: %s at line %d, column %d near %q", e.Msg, e.Line, e.Col, e.Segment)
	}
	return fmt.Sprintf("nbt: %s at line %d, column %d", e.Msg, e.Line, e.Col)
}
