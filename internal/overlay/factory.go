package overlay

import (
	"errors"
	"fmt"

	"github.com/1broseidon/overlay/internal/platform"
	"github.com/1broseidon/overlay/internal/surface"
)

// Window is an overlay shown on one display.
type Window struct {
	ID      platform.WindowID
	Display platform.Display
	Origin  platform.Point
	Buffer  *surface.Buffer
}

// Result is the outcome of creating one overlay: a window or the reason it
// could not be created.
type Result struct {
	Window *Window
	Err    error
}

// OK reports whether the window was created.
func (r Result) OK() bool { return r.Err == nil && r.Window != nil }

// WindowFactory creates and destroys overlay windows.
type WindowFactory interface {
	Create(d platform.Display, buf *surface.Buffer) Result
	Destroy(w *Window) error
}

// Factory creates one borderless, topmost, click-through layered window per
// call and paints the buffer into it.
type Factory struct {
	backend  platform.Backend
	handler  *EventHandler
	registry *ClassRegistry
}

var _ WindowFactory = (*Factory)(nil)

// NewFactory returns a Factory whose window class routes notifications to
// handler. The class is registered lazily by the first Create of any
// Factory on backend; later factories reuse that registration and its
// handler.
func NewFactory(backend platform.Backend, handler *EventHandler) *Factory {
	return &Factory{
		backend: backend,
		handler: handler,
		registry: registryFor(backend, func() error {
			return backend.RegisterClass(handler)
		}),
	}
}

// Create shows buf centred on d. A window whose paint fails is destroyed
// before the failure is returned.
func (f *Factory) Create(d platform.Display, buf *surface.Buffer) Result {
	if buf == nil || buf.Width < 1 || buf.Height < 1 || len(buf.Pix) != buf.Len() {
		return Result{Err: newWindowCreationError("validate buffer", fmt.Errorf("malformed pixel buffer"))}
	}
	if err := f.registry.Ensure(); err != nil {
		return Result{Err: err}
	}

	origin := Placement(d.Bounds, buf.Width, buf.Height)
	id, err := f.backend.CreateWindow(platform.Geometry{
		X:      origin.X,
		Y:      origin.Y,
		Width:  buf.Width,
		Height: buf.Height,
	})
	if err != nil {
		return Result{Err: newWindowCreationError("create window", err)}
	}

	if err := Paint(f.backend.Compositor(), id, origin, buf); err != nil {
		if derr := f.backend.DestroyWindow(id); derr != nil {
			err = errors.Join(err, fmt.Errorf("destroy unpainted window: %w", derr))
		}
		return Result{Err: newWindowCreationError("paint", err)}
	}

	if f.handler != nil {
		f.handler.Track(id)
	}
	return Result{Window: &Window{
		ID:      id,
		Display: d,
		Origin:  origin,
		Buffer:  buf,
	}}
}

// Destroy tears down w.
func (f *Factory) Destroy(w *Window) error {
	return f.backend.DestroyWindow(w.ID)
}
