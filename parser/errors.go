package parser

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Every parse failure is a *SyntaxError wrapping one of these.
var (
	ErrUnterminatedString = errors.New("unterminated string")
	ErrUnterminatedObject = errors.New("unterminated object")
	ErrUnterminatedArray  = errors.New("unterminated array")
	ErrJunk               = errors.New("junk")
	ErrUnparseableNumber  = errors.New("unparseable number")
	ErrExpectedString     = errors.New("expected string")
	ErrExpectedColon      = errors.New("expected colon")
	ErrExpectedValue      = errors.New("expected value")
	ErrTooManyLevels      = errors.New("too many levels")
	ErrInvalidEscape      = errors.New("invalid escape")
	ErrMissingEscape      = errors.New("missing escape")
)

// SyntaxError reports where in the input a parse failed. Offset counts bytes
// from the start of the buffer handed to Parse, including any byte order mark.
type SyntaxError struct {
	Err    error
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// IsTruncation reports whether err means the input ended before the value
// was complete, so that more data could still make it parse.
func IsTruncation(err error) bool {
	return errors.Is(err, ErrUnterminatedString) ||
		errors.Is(err, ErrUnterminatedObject) ||
		errors.Is(err, ErrUnterminatedArray) ||
		errors.Is(err, ErrExpectedValue)
}

// Offset extracts the byte offset from a parse error, or -1.
func Offset(err error) int {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Offset
	}
	return -1
}
