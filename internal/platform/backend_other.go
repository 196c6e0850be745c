//go:build !windows && !linux

package platform

// New returns ErrUnsupported; overlays need Win32 or X11.
func New(opts Options) (Backend, error) {
	return nil, ErrUnsupported
}
