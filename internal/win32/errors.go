//go:build windows

package win32

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is a failed Win32 call with the thread's last error code.
type Error struct {
	Op   string
	Code syscall.Errno
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v (code %d)", e.Op, e.Code, uint32(e.Code))
}

// ErrorCode returns the raw GetLastError value.
func (e *Error) ErrorCode() uint32 { return uint32(e.Code) }

func (e *Error) Unwrap() error {
	if e.Code == 0 {
		return nil
	}
	return e.Code
}

// IsClassExists reports whether err is ERROR_CLASS_ALREADY_EXISTS.
func IsClassExists(err error) bool {
	var we *Error
	return errors.As(err, &we) && we.Code == errClassExists
}

// callError builds an Error from the error value returned by LazyProc.Call.
func callError(op string, err error) *Error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &Error{Op: op, Code: errno}
	}
	return &Error{Op: op}
}
