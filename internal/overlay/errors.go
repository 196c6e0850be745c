package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrEnumeration means the platform could not report displays. It is
	// fatal: no overlay can be placed.
	ErrEnumeration = errors.New("display enumeration failed")
	// ErrWindowCreation means one display's window could not be created or
	// painted. It only costs that display.
	ErrWindowCreation = errors.New("overlay window creation failed")
)

// EnumerationError wraps the platform failure behind ErrEnumeration.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrEnumeration, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

func (e *EnumerationError) Is(target error) bool { return target == ErrEnumeration }

// WindowCreationError is a failed step of window setup together with the
// last platform error code.
type WindowCreationError struct {
	Op   string
	Code uint32
	Err  error
}

func (e *WindowCreationError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %v (code %d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WindowCreationError) Unwrap() error { return e.Err }

func (e *WindowCreationError) Is(target error) bool { return target == ErrWindowCreation }

func newWindowCreationError(op string, err error) *WindowCreationError {
	return &WindowCreationError{Op: op, Code: ErrorCode(err), Err: err}
}

// ErrorCode returns the platform error code carried anywhere in err's
// chain, or 0.
func ErrorCode(err error) uint32 {
	var coded interface{ ErrorCode() uint32 }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return 0
}
