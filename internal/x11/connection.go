// Package x11 shows overlay windows on an X server: RandR monitor
// discovery, override-redirect ARGB windows that ignore input, and a
// pixmap-backed compositor.
package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and the overlay resources created
// on it.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	visual argbVisual

	mu       sync.Mutex
	overlays map[xproto.Window]xproto.Colormap
}

// NewConnection connects to display (empty means $DISPLAY) and initializes
// the SHAPE extension used for click-through input regions.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	if err := shape.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("shape extension unavailable: %w", err)
	}

	visual, ok := findARGBVisual(xu.Screen())
	if !ok {
		xu.Conn().Close()
		return nil, fmt.Errorf("no 32-bit TrueColor visual on screen; is a compositing manager running?")
	}

	return &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		visual:   visual,
		overlays: make(map[xproto.Window]xproto.Colormap),
	}, nil
}

// EventLoop runs the X event loop until Quit is called.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops EventLoop after the current event.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// argbVisual is a depth-32 TrueColor visual, the only kind that carries a
// per-pixel alpha channel through a compositing manager.
type argbVisual struct {
	ID    xproto.Visualid
	Depth byte
}

func findARGBVisual(screen *xproto.ScreenInfo) (argbVisual, bool) {
	for _, depth := range screen.AllowedDepths {
		if depth.Depth != 32 {
			continue
		}
		for _, v := range depth.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return argbVisual{ID: v.VisualId, Depth: depth.Depth}, true
			}
		}
	}
	return argbVisual{}, false
}
