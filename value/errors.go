package value

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrUnexpectedType is matched by every TypeError.
var ErrUnexpectedType = errors.New("unexpected type")

// TypeError is returned by the typed accessors when the active kind does not
// match the requested one.
type TypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unexpected type: expected %s, got %s", e.Expected, e.Actual)
}

func (e *TypeError) Unwrap() error { return ErrUnexpectedType }

func typeError(expected, actual Kind) error {
	return &TypeError{Expected: expected, Actual: actual}
}
