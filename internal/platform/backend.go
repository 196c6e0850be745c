package platform

import (
	"errors"
	"fmt"
)

// WindowID is a platform-neutral window identifier.
type WindowID uintptr

// Handle is an opaque native object used during a paint: a device context,
// a bitmap, a pixmap or a graphics context.
type Handle uintptr

// Point is a position in virtual-desktop coordinates.
type Point struct {
	X int
	Y int
}

// Region is the bounding rectangle of a display in screen coordinates.
// Right and Bottom are exclusive.
type Region struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of the region.
func (r Region) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the region.
func (r Region) Height() int { return r.Bottom - r.Top }

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Display describes a physical display discovered by enumeration.
type Display struct {
	Index   int
	Name    string
	Bounds  Region
	Primary bool
}

// Label identifies the display in log lines and CLI output.
func (d Display) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("display%d", d.Index)
}

// Geometry is the position and size of a window.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ErrClassExists is returned by RegisterClass when the window class is
// already registered in this process.
var ErrClassExists = errors.New("window class already registered")

// ErrUnsupported is returned by New on platforms without a backend.
var ErrUnsupported = errors.New("no overlay backend for this platform")

// EventKind classifies a window notification.
type EventKind int

const (
	EventOther EventKind = iota
	EventDestroy
)

// Event is a window notification delivered by the event loop.
type Event struct {
	Window WindowID
	Kind   EventKind
}

// EventHandler receives window notifications. Handle reports whether the
// event was consumed; unconsumed events get default platform handling.
type EventHandler interface {
	Handle(ev Event) bool
}

// Compositor exposes the native calls needed for one layered paint: a screen
// context, an off-screen context, a 32-bit top-down surface with writable
// memory, and the alpha composite onto a window.
type Compositor interface {
	ScreenContext() (Handle, error)
	CompatibleContext(screen Handle) (Handle, error)
	CreateSurface(ctx Handle, width, height int) (Handle, []byte, error)
	Select(ctx, surface Handle) (previous Handle, err error)
	Show(win WindowID) error
	Composite(win WindowID, screen, ctx Handle, dst Point, width, height int) error

	Deselect(ctx, previous Handle)
	DeleteSurface(surface Handle)
	DeleteContext(ctx Handle)
	ReleaseScreen(screen Handle)
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	RegisterClass(handler EventHandler) error
	CreateWindow(g Geometry) (WindowID, error)
	DestroyWindow(id WindowID) error
	// RequestClose asks for id to be destroyed through the event loop. It is
	// safe to call from any goroutine.
	RequestClose(id WindowID) error
	Compositor() Compositor
	// OpenControl shows a control window titled title whose close request
	// calls onClose. Backends without one return 0 and no error.
	OpenControl(title string, onClose func()) (WindowID, error)
	EventLoop() error
	Quit()
	Close() error
}

// Options configures backend construction.
type Options struct {
	// ClassName is the window class (Win32) or WM_CLASS (X11) of overlays.
	ClassName string
	// Display is the X11 display name; empty uses $DISPLAY.
	Display string
}
