package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// putImageHeader is the fixed size of a PutImage request before its data.
const putImageHeader = 24

type surface struct {
	width  int
	height int
	bits   []byte
}

// Compositor paints a BGRA image into an overlay window: the image is
// uploaded to a depth-32 pixmap that becomes the window background. One
// Compositor serves one paint.
type Compositor struct {
	conn     *Connection
	surfaces map[xproto.Pixmap]*surface
	bound    map[xproto.Gcontext]xproto.Pixmap
}

// NewCompositor returns a Compositor for a single paint.
func (c *Connection) NewCompositor() *Compositor {
	return &Compositor{
		conn:     c,
		surfaces: make(map[xproto.Pixmap]*surface),
		bound:    make(map[xproto.Gcontext]xproto.Pixmap),
	}
}

// Root returns the drawable every overlay resource is created against.
func (p *Compositor) Root() xproto.Drawable {
	return xproto.Drawable(p.conn.Root)
}

// CreateGC creates a graphics context usable with depth-32 drawables. A GC
// must be created on a drawable of the target depth, so a 1x1 scratch
// pixmap is used and freed straight away.
func (p *Compositor) CreateGC() (xproto.Gcontext, error) {
	conn := p.conn.XUtil.Conn()

	scratch, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, requestError("allocate pixmap id", err)
	}
	err = xproto.CreatePixmapChecked(conn, p.conn.visual.Depth, scratch, p.Root(), 1, 1).Check()
	if err != nil {
		return 0, requestError("CreatePixmap", err)
	}
	defer xproto.FreePixmap(conn, scratch)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, requestError("allocate gc id", err)
	}
	err = xproto.CreateGCChecked(conn, gc, xproto.Drawable(scratch), 0, nil).Check()
	if err != nil {
		return 0, requestError("CreateGC", err)
	}
	return gc, nil
}

// FreeGC frees a context from CreateGC.
func (p *Compositor) FreeGC(gc xproto.Gcontext) {
	delete(p.bound, gc)
	xproto.FreeGC(p.conn.XUtil.Conn(), gc)
}

// CreatePixmap creates a width x height depth-32 pixmap and returns the
// client-side staging memory that Upload sends to it.
func (p *Compositor) CreatePixmap(width, height int) (xproto.Pixmap, []byte, error) {
	if width < 1 || height < 1 || width > 0x7fff || height > 0x7fff {
		return 0, nil, fmt.Errorf("pixmap size %dx%d out of range", width, height)
	}
	conn := p.conn.XUtil.Conn()

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, nil, requestError("allocate pixmap id", err)
	}
	err = xproto.CreatePixmapChecked(conn, p.conn.visual.Depth, pix, p.Root(), uint16(width), uint16(height)).Check()
	if err != nil {
		return 0, nil, requestError("CreatePixmap", err)
	}

	s := &surface{width: width, height: height, bits: make([]byte, width*height*4)}
	p.surfaces[pix] = s
	return pix, s.bits, nil
}

// FreePixmap frees a pixmap from CreatePixmap.
func (p *Compositor) FreePixmap(pix xproto.Pixmap) {
	delete(p.surfaces, pix)
	xproto.FreePixmap(p.conn.XUtil.Conn(), pix)
}

// Upload premultiplies the staging memory of pix and writes it into the
// pixmap through gc, split into requests the server accepts.
func (p *Compositor) Upload(gc xproto.Gcontext, pix xproto.Pixmap) error {
	s, ok := p.surfaces[pix]
	if !ok {
		return fmt.Errorf("unknown pixmap 0x%x", uint32(pix))
	}

	premultiply(s.bits)
	setup := p.conn.XUtil.Setup()
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst {
		swapPixelBytes(s.bits)
	}

	stride := s.width * 4
	spans, err := chunkRows(s.height, stride, int(setup.MaximumRequestLength)*4-putImageHeader)
	if err != nil {
		return err
	}

	conn := p.conn.XUtil.Conn()
	for _, span := range spans {
		data := s.bits[span.start*stride : (span.start+span.rows)*stride]
		err := xproto.PutImageChecked(conn, xproto.ImageFormatZPixmap, xproto.Drawable(pix), gc,
			uint16(s.width), uint16(span.rows), 0, int16(span.start), 0, p.conn.visual.Depth, data).Check()
		if err != nil {
			return requestError("PutImage", err)
		}
	}

	p.bound[gc] = pix
	return nil
}

// SetBackground moves win to (x, y) with the given size and shows the
// pixmap last uploaded through gc as its content.
func (p *Compositor) SetBackground(win xproto.Window, gc xproto.Gcontext, x, y, width, height int) error {
	pix, ok := p.bound[gc]
	if !ok {
		return fmt.Errorf("no pixmap uploaded through gc 0x%x", uint32(gc))
	}
	conn := p.conn.XUtil.Conn()

	err := xproto.ConfigureWindowChecked(conn, win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)}).Check()
	if err != nil {
		return requestError("ConfigureWindow", err)
	}
	err = xproto.ChangeWindowAttributesChecked(conn, win, xproto.CwBackPixmap, []uint32{uint32(pix)}).Check()
	if err != nil {
		return requestError("set background pixmap", err)
	}
	err = xproto.ClearAreaChecked(conn, false, win, 0, 0, 0, 0).Check()
	return requestError("ClearArea", err)
}

type rowSpan struct {
	start int
	rows  int
}

// chunkRows splits height rows of stride bytes into spans of at most
// maxBytes each.
func chunkRows(height, stride, maxBytes int) ([]rowSpan, error) {
	if stride <= 0 || height <= 0 {
		return nil, nil
	}
	per := maxBytes / stride
	if per < 1 {
		return nil, fmt.Errorf("image row of %d bytes exceeds the %d-byte request limit", stride, maxBytes)
	}

	spans := make([]rowSpan, 0, (height+per-1)/per)
	for start := 0; start < height; start += per {
		rows := per
		if start+rows > height {
			rows = height - start
		}
		spans = append(spans, rowSpan{start: start, rows: rows})
	}
	return spans, nil
}

// premultiply scales the colour channels of straight-alpha BGRA pixels by
// their alpha, rounding to nearest.
func premultiply(bgra []byte) {
	for i := 0; i+3 < len(bgra); i += 4 {
		a := uint32(bgra[i+3])
		switch a {
		case 255:
			continue
		case 0:
			bgra[i], bgra[i+1], bgra[i+2] = 0, 0, 0
			continue
		}
		bgra[i] = byte((uint32(bgra[i])*a + 127) / 255)
		bgra[i+1] = byte((uint32(bgra[i+1])*a + 127) / 255)
		bgra[i+2] = byte((uint32(bgra[i+2])*a + 127) / 255)
	}
}

// swapPixelBytes turns BGRA byte order into ARGB for MSB-first servers.
func swapPixelBytes(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = pix[i+3], pix[i+2], pix[i+1], pix[i]
	}
}

// ShowWindow maps and raises win.
func (p *Compositor) ShowWindow(win xproto.Window) error {
	return p.conn.ShowOverlay(win)
}

// Flush waits until the server has processed every request of the paint.
func (p *Compositor) Flush() {
	p.conn.XUtil.Sync()
}
