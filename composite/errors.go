package composite

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedBrace   = errors.New("unexpected closing brace")
	ErrInvalidIndex      = errors.New("format item index must start with a digit")
	ErrInvalidAlignment  = errors.New("format item alignment must be a number")
	ErrUnclosedItem      = errors.New("format item is not closed")
	ErrInvalidFormatSpec = errors.New("format specifier cannot contain an opening brace")
	ErrIndexLimit        = errors.New("format item index or alignment exceeds the limit")
	ErrArgumentIndex     = errors.New("format item index is out of the argument list range")
)

// FormatError reports a template the engine refuses to render.
//
// Pos is the byte offset in Template where rendering stopped.
type FormatError struct {
	Template string
	Pos      int
	Err      error
}

func newError(template string, pos int, err error) *FormatError {
	return &FormatError{Template: template, Pos: pos, Err: err}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("composite: %v at offset %d in %q", e.Err, e.Pos, e.Template)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
