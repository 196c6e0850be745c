package overlay

import (
	"fmt"

	"github.com/1broseidon/overlay/internal/platform"
	"github.com/1broseidon/overlay/internal/surface"
)

// Paint performs the one-shot layered paint of buf onto win with its origin
// at dst. Each step runs only if the previous one succeeded, and every
// handle acquired is released in reverse order before Paint returns,
// whether or not the composite succeeded.
func Paint(c platform.Compositor, win platform.WindowID, dst platform.Point, buf *surface.Buffer) error {
	screen, err := c.ScreenContext()
	if err != nil {
		return fmt.Errorf("acquire screen context: %w", err)
	}
	defer c.ReleaseScreen(screen)

	ctx, err := c.CompatibleContext(screen)
	if err != nil {
		return fmt.Errorf("create off-screen context: %w", err)
	}
	defer c.DeleteContext(ctx)

	bitmap, bits, err := c.CreateSurface(ctx, buf.Width, buf.Height)
	if err != nil {
		return fmt.Errorf("create %dx%d surface: %w", buf.Width, buf.Height, err)
	}
	defer c.DeleteSurface(bitmap)

	if len(bits) < len(buf.Pix) {
		return fmt.Errorf("surface holds %d bytes, image needs %d", len(bits), len(buf.Pix))
	}
	copy(bits, buf.Pix)

	previous, err := c.Select(ctx, bitmap)
	if err != nil {
		return fmt.Errorf("bind surface: %w", err)
	}
	defer c.Deselect(ctx, previous)

	if err := c.Show(win); err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	if err := c.Composite(win, screen, ctx, dst, buf.Width, buf.Height); err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	return nil
}
