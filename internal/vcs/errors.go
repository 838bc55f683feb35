package vcs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds, for use with errors.Is
var (
	ErrNotFound   = errors.New("not found")
	ErrIO         = errors.New("i/o failure")
	ErrInvalidRef = errors.New("invalid ref")
)

// Error is a failed repository operation
type Error struct {
	Kind error  // one of ErrNotFound, ErrIO, or ErrInvalidRef
	Op   string // e.g. "resolve HEAD~1"
	Err  error
}

func newError(kind error, err error, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind: kind,
		Op:   fmt.Sprintf(format, args...),
		Err:  err,
	})
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

// Is returns true if target is e's Kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
