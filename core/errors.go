package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the object store and the page model. Test for
// them with errors.Is; they are usually wrapped in an *Error.
var (
	// ErrValueOutOfRange reports an argument outside its permitted set,
	// such as a rotation of 45 degrees or an ICC profile with 2 components.
	ErrValueOutOfRange = errors.New("pdfpage: value out of range")

	// ErrInvalidRotation reports a stored rotation that is not a multiple
	// of 90 degrees when a visual transform has to be applied.
	ErrInvalidRotation = errors.New("pdfpage: invalid rotation")

	// ErrBrokenFile reports a structurally unsound tree, for example a
	// Parent chain that loops.
	ErrBrokenFile = errors.New("pdfpage: broken file")

	// ErrNoObject reports a reference that the object store cannot resolve.
	ErrNoObject = errors.New("pdfpage: object not found")

	// ErrInvalidHandle reports access to an optional sub-object that has
	// not been created yet.
	ErrInvalidHandle = errors.New("pdfpage: invalid handle")
)

// Error represents a failure of a specific operation. It wraps an
// underlying error, typically one of the sentinels above.
type Error struct {
	Op  string // operation name, e.g. "Page.SetRotation"
	Err error  // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfpage.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfpage.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with operation context.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// Errorf wraps a sentinel with operation context and a formatted detail
// message. The sentinel stays reachable through errors.Is.
func Errorf(op string, sentinel error, format string, args ...interface{}) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))}
}
