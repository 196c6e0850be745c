//go:build windows

package platform

import (
	"fmt"

	"github.com/1broseidon/overlay/internal/win32"
	"github.com/lxn/win"
)

// WindowsBackend drives overlays through user32 and gdi32. Every method
// except RequestClose must run on the thread that calls EventLoop.
type WindowsBackend struct {
	className string
}

var _ Backend = (*WindowsBackend)(nil)

// New returns the Win32 backend.
func New(opts Options) (Backend, error) {
	if opts.ClassName == "" {
		return nil, fmt.Errorf("window class name is required")
	}
	return &WindowsBackend{className: opts.ClassName}, nil
}

// Displays returns all monitors in EnumDisplayMonitors order.
func (b *WindowsBackend) Displays() ([]Display, error) {
	monitors, err := win32.Monitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for i, m := range monitors {
		displays = append(displays, Display{
			Index: i,
			Name:  m.Device,
			Bounds: Region{
				Left:   int(m.Rect.Left),
				Top:    int(m.Rect.Top),
				Right:  int(m.Rect.Right),
				Bottom: int(m.Rect.Bottom),
			},
			Primary: m.Primary,
		})
	}
	return displays, nil
}

// RegisterClass registers the overlay window class. WM_DESTROY is delivered
// to handler as EventDestroy.
func (b *WindowsBackend) RegisterClass(handler EventHandler) error {
	err := win32.RegisterClass(b.className, func(hwnd win.HWND, msg uint32) bool {
		kind := EventOther
		if msg == win.WM_DESTROY {
			kind = EventDestroy
		}
		return handler.Handle(Event{Window: WindowID(hwnd), Kind: kind})
	})
	if win32.IsClassExists(err) {
		return fmt.Errorf("%w: %w", ErrClassExists, err)
	}
	return err
}

func (b *WindowsBackend) CreateWindow(g Geometry) (WindowID, error) {
	hwnd, err := win32.CreateOverlay(b.className, g.X, g.Y, g.Width, g.Height)
	if err != nil {
		return 0, err
	}
	return WindowID(hwnd), nil
}

func (b *WindowsBackend) DestroyWindow(id WindowID) error {
	return win32.DestroyWindow(win.HWND(id))
}

// RequestClose posts WM_CLOSE; default handling destroys the window on the
// loop thread.
func (b *WindowsBackend) RequestClose(id WindowID) error {
	return win32.PostClose(win.HWND(id))
}

func (b *WindowsBackend) Compositor() Compositor { return gdiCompositor{} }

// OpenControl shows the control window under the class name suffixed with
// "Control". Closing it from the title bar or with taskkill calls onClose.
func (b *WindowsBackend) OpenControl(title string, onClose func()) (WindowID, error) {
	hwnd, err := win32.CreateControl(b.className+"Control", title, onClose)
	if err != nil {
		return 0, err
	}
	return WindowID(hwnd), nil
}

func (b *WindowsBackend) EventLoop() error { return win32.RunMessageLoop() }

func (b *WindowsBackend) Quit() { win32.PostQuit() }

func (b *WindowsBackend) Close() error { return nil }

// gdiCompositor maps the paint steps onto GDI device contexts and a DIB
// section.
type gdiCompositor struct{}

func (gdiCompositor) ScreenContext() (Handle, error) {
	hdc, err := win32.ScreenDC()
	return Handle(hdc), err
}

func (gdiCompositor) CompatibleContext(screen Handle) (Handle, error) {
	hdc, err := win32.CreateCompatibleDC(win.HDC(screen))
	return Handle(hdc), err
}

func (gdiCompositor) CreateSurface(ctx Handle, width, height int) (Handle, []byte, error) {
	bmp, bits, err := win32.CreateDIB(win.HDC(ctx), width, height)
	return Handle(bmp), bits, err
}

func (gdiCompositor) Select(ctx, surface Handle) (Handle, error) {
	prev, err := win32.SelectObject(win.HDC(ctx), win.HGDIOBJ(surface))
	return Handle(prev), err
}

func (gdiCompositor) Show(w WindowID) error {
	return win32.ShowTopmost(win.HWND(w))
}

func (gdiCompositor) Composite(w WindowID, screen, ctx Handle, dst Point, width, height int) error {
	return win32.UpdateLayered(win.HWND(w), win.HDC(screen), win.HDC(ctx), dst.X, dst.Y, width, height)
}

func (gdiCompositor) Deselect(ctx, previous Handle) {
	win32.SelectObject(win.HDC(ctx), win.HGDIOBJ(previous))
}

func (gdiCompositor) DeleteSurface(surface Handle) { win32.DeleteObject(win.HGDIOBJ(surface)) }

func (gdiCompositor) DeleteContext(ctx Handle) { win32.DeleteDC(win.HDC(ctx)) }

func (gdiCompositor) ReleaseScreen(screen Handle) { win32.ReleaseScreenDC(win.HDC(screen)) }
