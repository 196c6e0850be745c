package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Error is a failed X request together with the X error code, when the
// server reported one.
type Error struct {
	Op   string
	Code uint32
	Err  error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %v (X error %d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// ErrorCode returns the X protocol error code, or 0.
func (e *Error) ErrorCode() uint32 { return e.Code }

func (e *Error) Unwrap() error { return e.Err }

func requestError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Code: xErrorCode(err), Err: err}
}

// xErrorCode maps core protocol errors to their numeric codes.
func xErrorCode(err error) uint32 {
	switch err.(type) {
	case xproto.RequestError:
		return 1
	case xproto.ValueError:
		return 2
	case xproto.WindowError:
		return 3
	case xproto.PixmapError:
		return 4
	case xproto.AtomError:
		return 5
	case xproto.MatchError:
		return 8
	case xproto.DrawableError:
		return 9
	case xproto.AccessError:
		return 10
	case xproto.AllocError:
		return 11
	case xproto.ColormapError:
		return 12
	case xproto.GContextError:
		return 13
	case xproto.IDChoiceError:
		return 14
	case xproto.LengthError:
		return 16
	case xproto.ImplementationError:
		return 17
	}
	return 0
}
