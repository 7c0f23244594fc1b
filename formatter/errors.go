package formatter

import "github.com/cockroachdb/errors"

var (
	// ErrInsufficientRoom is returned by FormatTo when the output does not
	// fit the destination buffer.
	ErrInsufficientRoom = errors.New("insufficient room in output buffer")
	// ErrInvalidUTF8 is returned when UTF-8 validation is enabled and a
	// string holds an invalid or truncated sequence.
	ErrInvalidUTF8 = errors.New("invalid or truncated UTF-8 sequence")
	// ErrUnsupportedValue is returned for NaN and infinite doubles, which
	// JSON cannot represent.
	ErrUnsupportedValue = errors.New("unsupported value")
)
