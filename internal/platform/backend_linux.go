//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/1broseidon/overlay/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn      *x11.Connection
	className string

	mu      sync.Mutex
	handler EventHandler
}

var _ Backend = (*LinuxBackend)(nil)

// New opens the X display named in opts and returns the X11 backend.
func New(opts Options) (Backend, error) {
	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn, className: opts.ClassName}, nil
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.Monitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for i, m := range monitors {
		left, top, right, bottom := m.Bounds()
		displays = append(displays, Display{
			Index:   i,
			Name:    m.Name,
			Bounds:  Region{Left: left, Top: top, Right: right, Bottom: bottom},
			Primary: m.Primary,
		})
	}
	return displays, nil
}

// RegisterClass installs the handler for overlay notifications. X has no
// window classes to register; WM_CLASS is set on each window instead.
func (b *LinuxBackend) RegisterClass(handler EventHandler) error {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
	return nil
}

func (b *LinuxBackend) CreateWindow(g Geometry) (WindowID, error) {
	win, err := b.conn.CreateOverlay(g.X, g.Y, g.Width, g.Height, b.className)
	if err != nil {
		return 0, err
	}

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		b.mu.Lock()
		h := b.handler
		b.mu.Unlock()
		if h != nil {
			h.Handle(Event{Window: WindowID(ev.Window), Kind: EventDestroy})
		}
		xevent.Detach(xu, ev.Window)
	}).Connect(b.conn.XUtil, win)

	return WindowID(win), nil
}

func (b *LinuxBackend) DestroyWindow(id WindowID) error {
	return b.conn.DestroyOverlay(xproto.Window(id))
}

// RequestClose destroys the window; the DestroyNotify it generates reaches
// the handler through the event loop.
func (b *LinuxBackend) RequestClose(id WindowID) error {
	return b.conn.DestroyOverlay(xproto.Window(id))
}

func (b *LinuxBackend) Compositor() Compositor {
	return &xCompositor{p: b.conn.NewCompositor()}
}

// OpenControl is a no-op on X11: overlays are closed with SIGINT or SIGTERM.
func (b *LinuxBackend) OpenControl(title string, onClose func()) (WindowID, error) {
	return 0, nil
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() error {
	b.conn.EventLoop()
	return nil
}

func (b *LinuxBackend) Quit() { b.conn.Quit() }

// Close disconnects from the X server.
func (b *LinuxBackend) Close() error {
	b.conn.Close()
	return nil
}

// xCompositor maps the paint steps onto a GC, a depth-32 pixmap and the
// window background.
type xCompositor struct {
	p *x11.Compositor
}

func (c *xCompositor) ScreenContext() (Handle, error) {
	return Handle(c.p.Root()), nil
}

func (c *xCompositor) CompatibleContext(screen Handle) (Handle, error) {
	gc, err := c.p.CreateGC()
	return Handle(gc), err
}

func (c *xCompositor) CreateSurface(ctx Handle, width, height int) (Handle, []byte, error) {
	pix, bits, err := c.p.CreatePixmap(width, height)
	return Handle(pix), bits, err
}

func (c *xCompositor) Select(ctx, surface Handle) (Handle, error) {
	return 0, c.p.Upload(xproto.Gcontext(ctx), xproto.Pixmap(surface))
}

func (c *xCompositor) Show(w WindowID) error {
	return c.p.ShowWindow(xproto.Window(w))
}

func (c *xCompositor) Composite(w WindowID, screen, ctx Handle, dst Point, width, height int) error {
	return c.p.SetBackground(xproto.Window(w), xproto.Gcontext(ctx), dst.X, dst.Y, width, height)
}

func (c *xCompositor) Deselect(ctx, previous Handle) {}

func (c *xCompositor) DeleteSurface(surface Handle) { c.p.FreePixmap(xproto.Pixmap(surface)) }

func (c *xCompositor) DeleteContext(ctx Handle) { c.p.FreeGC(xproto.Gcontext(ctx)) }

func (c *xCompositor) ReleaseScreen(screen Handle) { c.p.Flush() }
