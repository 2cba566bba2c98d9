package securevalue

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/systmms/securevalue/internal/logging"
)

// FormatError reports textual input that does not parse as the target's
// native numeric form. The offending input is never included in the
// message; parse input is treated as sensitive.
type FormatError struct {
	Kind string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse %s as %s: %v", logging.Redacted, e.Kind, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// newFormatError strips the raw input that strconv embeds in its
// NumError before wrapping, keeping only the cause (ErrSyntax/ErrRange).
func newFormatError(kind string, err error) *FormatError {
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		err = nerr.Err
	}
	return &FormatError{Kind: kind, Err: err}
}

// ArithmeticError reports a native arithmetic fault during a computed
// operation, i.e. division or modulus by zero. Overflow is not an
// error: fixed-width integers wrap, exactly as the native types do.
type ArithmeticError struct {
	Op string
}

func (e *ArithmeticError) Error() string {
	return "integer divide by zero in " + e.Op
}
