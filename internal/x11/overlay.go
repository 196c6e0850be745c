package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

const allDesktops = 0xFFFFFFFF

// CreateOverlay creates an unmapped, borderless, override-redirect ARGB
// window at (x, y) that never receives pointer input. class becomes its
// WM_CLASS. The window reports its own destruction through
// StructureNotify.
func (c *Connection) CreateOverlay(x, y, width, height int, class string) (xproto.Window, error) {
	conn := c.XUtil.Conn()

	cmap, err := xproto.NewColormapId(conn)
	if err != nil {
		return 0, requestError("allocate colormap id", err)
	}
	err = xproto.CreateColormapChecked(conn, xproto.ColormapAllocNone, cmap, c.Root, c.visual.ID).Check()
	if err != nil {
		return 0, requestError("CreateColormap", err)
	}

	win, err := xproto.NewWindowId(conn)
	if err != nil {
		xproto.FreeColormap(conn, cmap)
		return 0, requestError("allocate window id", err)
	}

	// Value order follows the mask bit order.
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect | xproto.CwEventMask | xproto.CwColormap)
	values := []uint32{
		0,
		0,
		1,
		xproto.EventMaskStructureNotify,
		uint32(cmap),
	}
	err = xproto.CreateWindowChecked(conn, c.visual.Depth, win, c.Root,
		int16(x), int16(y), uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, c.visual.ID, mask, values).Check()
	if err != nil {
		xproto.FreeColormap(conn, cmap)
		return 0, requestError("CreateWindow", err)
	}

	c.mu.Lock()
	c.overlays[win] = cmap
	c.mu.Unlock()

	if err := c.setClickThrough(win); err != nil {
		c.DestroyOverlay(win)
		return 0, err
	}
	if err := c.setHints(win, class); err != nil {
		c.DestroyOverlay(win)
		return 0, err
	}
	return win, nil
}

// setClickThrough gives win an empty input region so pointer events reach
// whatever lies underneath.
func (c *Connection) setClickThrough(win xproto.Window) error {
	err := shape.RectanglesChecked(c.XUtil.Conn(), shape.SoSet, shape.SkInput,
		xproto.ClipOrderingUnsorted, win, 0, 0, nil).Check()
	return requestError("set empty input shape", err)
}

// setHints marks win as a notification that stays above other windows on
// every desktop and stays out of taskbars and pagers. Compositors read
// these even though no window manager manages the window.
func (c *Connection) setHints(win xproto.Window, class string) error {
	if err := icccm.WmClassSet(c.XUtil, win, &icccm.WmClass{Instance: class, Class: class}); err != nil {
		return requestError("set WM_CLASS", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, win, class); err != nil {
		return requestError("set _NET_WM_NAME", err)
	}
	if err := ewmh.WmWindowTypeSet(c.XUtil, win, []string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"}); err != nil {
		return requestError("set _NET_WM_WINDOW_TYPE", err)
	}
	states := []string{
		"_NET_WM_STATE_ABOVE",
		"_NET_WM_STATE_STICKY",
		"_NET_WM_STATE_SKIP_TASKBAR",
		"_NET_WM_STATE_SKIP_PAGER",
	}
	if err := ewmh.WmStateSet(c.XUtil, win, states); err != nil {
		return requestError("set _NET_WM_STATE", err)
	}
	if err := ewmh.WmDesktopSet(c.XUtil, win, allDesktops); err != nil {
		return requestError("set _NET_WM_DESKTOP", err)
	}
	return nil
}

// ShowOverlay maps win and raises it above its siblings.
func (c *Connection) ShowOverlay(win xproto.Window) error {
	conn := c.XUtil.Conn()
	if err := xproto.MapWindowChecked(conn, win).Check(); err != nil {
		return requestError("MapWindow", err)
	}
	err := xproto.ConfigureWindowChecked(conn, win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
	return requestError("raise window", err)
}

// DestroyOverlay destroys win and frees its colormap. Windows not created
// by CreateOverlay, or already destroyed, are ignored.
func (c *Connection) DestroyOverlay(win xproto.Window) error {
	c.mu.Lock()
	cmap, ok := c.overlays[win]
	delete(c.overlays, win)
	c.mu.Unlock()
	if !ok {
		return nil
	}

	conn := c.XUtil.Conn()
	err := xproto.DestroyWindowChecked(conn, win).Check()
	xproto.FreeColormap(conn, cmap)
	if err != nil {
		return requestError(fmt.Sprintf("DestroyWindow 0x%x", uint32(win)), err)
	}
	return nil
}
