package overlay

import (
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/overlay/internal/platform"
	"github.com/1broseidon/overlay/internal/surface"
)

// Controller shows one image on every display and runs the event loop.
type Controller struct {
	backend platform.Backend
	factory WindowFactory
	logger  *slog.Logger

	controlTitle string

	mu       sync.Mutex
	windows  []*Window
	control  platform.WindowID
	stopping bool
}

// NewController returns a Controller. A nil logger discards output.
func NewController(backend platform.Backend, factory WindowFactory, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		backend: backend,
		factory: factory,
		logger:  logger,
	}
}

// ShowControl makes Serve open a control window titled title while the
// overlays are shown. Closing it closes every overlay.
func (c *Controller) ShowControl(title string) {
	c.controlTitle = title
}

// Run enumerates displays and creates one overlay per display, in order.
// A display whose window fails is logged and skipped; only an enumeration
// failure is returned. The result may be empty.
func (c *Controller) Run(buf *surface.Buffer) ([]*Window, error) {
	displays, err := c.backend.Displays()
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}
	c.logger.Debug("displays enumerated", "count", len(displays))

	windows := make([]*Window, 0, len(displays))
	for _, d := range displays {
		res := c.factory.Create(d, buf)
		if !res.OK() {
			c.logger.Error("overlay creation failed",
				"monitor", d.Label(),
				"index", d.Index,
				"bounds", d.Bounds.String(),
				"code", ErrorCode(res.Err),
				"err", res.Err,
			)
			continue
		}
		c.logger.Debug("overlay shown",
			"monitor", d.Label(),
			"x", res.Window.Origin.X,
			"y", res.Window.Origin.Y,
			"width", buf.Width,
			"height", buf.Height,
		)
		windows = append(windows, res.Window)
	}

	c.logger.Info("overlays shown", "shown", len(windows), "displays", len(displays))
	return windows, nil
}

// Serve runs Run, pumps events until a destroy notification stops the loop,
// then destroys the remaining windows. With no windows there is nothing to
// pump and Serve returns immediately.
func (c *Controller) Serve(buf *surface.Buffer) error {
	windows, err := c.Run(buf)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.windows = windows
	stopping := c.stopping
	c.mu.Unlock()

	if len(windows) == 0 {
		c.logger.Warn("no overlay windows could be created")
		return nil
	}
	if stopping {
		c.Teardown()
		return nil
	}

	if c.controlTitle != "" {
		c.openControl()
	}
	loopErr := c.backend.EventLoop()
	c.Teardown()
	return loopErr
}

// openControl shows the control window. Without one the overlays are still
// closable by signal, so a failure is only logged.
func (c *Controller) openControl() {
	id, err := c.backend.OpenControl(c.controlTitle, c.CloseAll)
	if err != nil {
		c.logger.Warn("control window unavailable", "code", ErrorCode(err), "err", err)
		return
	}
	if id == 0 {
		return
	}
	c.mu.Lock()
	c.control = id
	c.mu.Unlock()
	c.logger.Debug("control window shown", "title", c.controlTitle)
}

// CloseAll asks every overlay window to close. The first resulting destroy
// notification stops the event loop. Safe to call from any goroutine.
func (c *Controller) CloseAll() {
	c.mu.Lock()
	c.stopping = true
	windows := append([]*Window(nil), c.windows...)
	c.mu.Unlock()

	for _, w := range windows {
		if err := c.backend.RequestClose(w.ID); err != nil {
			c.logger.Warn("close request failed", "monitor", w.Display.Label(), "err", err)
		}
	}
}

// Teardown destroys every window created by Serve, then the control window.
func (c *Controller) Teardown() {
	c.mu.Lock()
	windows := c.windows
	control := c.control
	c.windows = nil
	c.control = 0
	c.mu.Unlock()

	for _, w := range windows {
		if err := c.factory.Destroy(w); err != nil {
			c.logger.Debug("destroy overlay", "monitor", w.Display.Label(), "err", err)
		}
	}
	if control != 0 {
		if err := c.backend.DestroyWindow(control); err != nil {
			c.logger.Debug("destroy control window", "err", err)
		}
	}
}

// Windows returns the windows currently owned by the controller.
func (c *Controller) Windows() []*Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Window(nil), c.windows...)
}
