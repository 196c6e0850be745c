package overlay

import (
	"errors"
	"fmt"

	"github.com/1broseidon/overlay/internal/platform"
	"github.com/1broseidon/overlay/internal/surface"
)

type codedError struct {
	op   string
	code uint32
}

func (e *codedError) Error() string     { return fmt.Sprintf("%s failed (code %d)", e.op, e.code) }
func (e *codedError) ErrorCode() uint32 { return e.code }

// fakeCompositor records every call in order and fails the step named in failAt.
type fakeCompositor struct {
	calls   []string
	failAt  string
	surface []byte
	dst     platform.Point
	size    [2]int
}

var _ platform.Compositor = (*fakeCompositor)(nil)

func (c *fakeCompositor) step(name string) error {
	c.calls = append(c.calls, name)
	if c.failAt == name {
		return &codedError{op: name, code: 87}
	}
	return nil
}

func (c *fakeCompositor) ScreenContext() (platform.Handle, error) {
	return 1, c.step("screen")
}

func (c *fakeCompositor) CompatibleContext(screen platform.Handle) (platform.Handle, error) {
	return 2, c.step("context")
}

func (c *fakeCompositor) CreateSurface(ctx platform.Handle, width, height int) (platform.Handle, []byte, error) {
	if err := c.step("surface"); err != nil {
		return 0, nil, err
	}
	c.surface = make([]byte, width*height*4)
	return 3, c.surface, nil
}

func (c *fakeCompositor) Select(ctx, surface platform.Handle) (platform.Handle, error) {
	return 4, c.step("select")
}

func (c *fakeCompositor) Show(win platform.WindowID) error {
	return c.step("show")
}

func (c *fakeCompositor) Composite(win platform.WindowID, screen, ctx platform.Handle, dst platform.Point, width, height int) error {
	c.dst = dst
	c.size = [2]int{width, height}
	return c.step("composite")
}

func (c *fakeCompositor) Deselect(ctx, previous platform.Handle) {
	c.calls = append(c.calls, "deselect")
}
func (c *fakeCompositor) DeleteSurface(surface platform.Handle) {
	c.calls = append(c.calls, "delete-surface")
}
func (c *fakeCompositor) DeleteContext(ctx platform.Handle) {
	c.calls = append(c.calls, "delete-context")
}
func (c *fakeCompositor) ReleaseScreen(screen platform.Handle) {
	c.calls = append(c.calls, "release-screen")
}

// fakeBackend is an in-memory platform.Backend.
type fakeBackend struct {
	displays    []platform.Display
	displaysErr error

	registerErr   error
	registrations int
	handler       platform.EventHandler

	failCreate map[int]bool
	creates    int
	nextID     platform.WindowID
	geometries []platform.Geometry
	destroyed  []platform.WindowID
	closed     []platform.WindowID

	compositor *fakeCompositor
	// failPaintOn makes the compositor fail composite for the given window.
	failPaintOn map[platform.WindowID]bool

	controlTitle   string
	controlOnClose func()
	controlErr     error

	loops int
	quits int
	// onLoop runs inside EventLoop, standing in for dispatched events.
	onLoop func(b *fakeBackend)
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{
		displays:    displays,
		failCreate:  map[int]bool{},
		failPaintOn: map[platform.WindowID]bool{},
		nextID:      100,
		compositor:  &fakeCompositor{},
	}
}

func (b *fakeBackend) Displays() ([]platform.Display, error) {
	if b.displaysErr != nil {
		return nil, b.displaysErr
	}
	return b.displays, nil
}

func (b *fakeBackend) RegisterClass(handler platform.EventHandler) error {
	b.registrations++
	b.handler = handler
	return b.registerErr
}

func (b *fakeBackend) CreateWindow(g platform.Geometry) (platform.WindowID, error) {
	idx := b.creates
	b.creates++
	if b.failCreate[idx] {
		return 0, &codedError{op: "CreateWindowEx", code: 1400}
	}
	b.nextID++
	b.geometries = append(b.geometries, g)
	return b.nextID, nil
}

func (b *fakeBackend) DestroyWindow(id platform.WindowID) error {
	b.destroyed = append(b.destroyed, id)
	if b.handler != nil {
		b.handler.Handle(platform.Event{Window: id, Kind: platform.EventDestroy})
	}
	return nil
}

func (b *fakeBackend) RequestClose(id platform.WindowID) error {
	b.closed = append(b.closed, id)
	return nil
}

func (b *fakeBackend) Compositor() platform.Compositor {
	return &windowCompositor{fakeCompositor: b.compositor, fail: b.failPaintOn}
}

func (b *fakeBackend) OpenControl(title string, onClose func()) (platform.WindowID, error) {
	if b.controlErr != nil {
		return 0, b.controlErr
	}
	b.controlTitle = title
	b.controlOnClose = onClose
	return 900, nil
}

func (b *fakeBackend) EventLoop() error {
	b.loops++
	if b.onLoop != nil {
		b.onLoop(b)
	}
	return nil
}

func (b *fakeBackend) Quit() { b.quits++ }

func (b *fakeBackend) Close() error { return nil }

// windowCompositor fails composite for selected windows.
type windowCompositor struct {
	*fakeCompositor
	fail map[platform.WindowID]bool
}

func (c *windowCompositor) Composite(win platform.WindowID, screen, ctx platform.Handle, dst platform.Point, width, height int) error {
	if c.fail[win] {
		c.calls = append(c.calls, "composite")
		return &codedError{op: "UpdateLayeredWindow", code: 8}
	}
	return c.fakeCompositor.Composite(win, screen, ctx, dst, width, height)
}

func testBuffer(w, h int) *surface.Buffer {
	buf := &surface.Buffer{Width: w, Height: h}
	buf.Pix = make([]byte, buf.Len())
	for i := range buf.Pix {
		buf.Pix[i] = byte(i * 7)
	}
	return buf
}

func display(index int, name string, left, top, right, bottom int) platform.Display {
	return platform.Display{
		Index:  index,
		Name:   name,
		Bounds: platform.Region{Left: left, Top: top, Right: right, Bottom: bottom},
	}
}

var errBoom = errors.New("boom")
