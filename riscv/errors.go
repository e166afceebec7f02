package riscv

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// The decoders themselves only report success or failure. These errors are
// for callers that classify a failure, e.g. after checking the input
// length themselves.
var (
	ErrShortInput           = errors.New("input shorter than one instruction")
	ErrUnrecognizedEncoding = errors.New("unrecognized instruction encoding")
)

// MalformedPatternError is a defect in a bit-pattern template: a character
// other than '0', '1', '?' or a separator, or an unsupported length. It is
// raised with panic, never returned, since it is a mistake in the table
// rather than in the data being decoded.
type MalformedPatternError struct {
	Pattern string
	// Offset is the index of the offending character in Pattern, or -1
	// when the pattern as a whole is the problem.
	Offset int
	Reason string

	frame xerrors.Frame
}

func newMalformedPatternError(pattern string, offset int, reason string) *MalformedPatternError {
	return &MalformedPatternError{
		Pattern: pattern,
		Offset:  offset,
		Reason:  reason,
		frame:   xerrors.Caller(3),
	}
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprint(e)
}

func (e *MalformedPatternError) Format(s fmt.State, v rune) {
	xerrors.FormatError(e, s, v)
}

func (e *MalformedPatternError) FormatError(p xerrors.Printer) error {
	if e.Offset >= 0 {
		p.Printf("malformed bit pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Reason)
	} else {
		p.Printf("malformed bit pattern %q: %s", e.Pattern, e.Reason)
	}
	e.frame.Format(p)
	return nil
}
