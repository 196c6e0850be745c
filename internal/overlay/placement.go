package overlay

import "github.com/1broseidon/overlay/internal/platform"

// Placement returns the origin that centres a width x height image on r.
// Halves are floored, and the result is not clamped: an image larger than
// the display extends past its edges and gets negative offsets.
func Placement(r platform.Region, width, height int) platform.Point {
	return platform.Point{
		X: r.Left + floorDiv(r.Width()-width, 2),
		Y: r.Top + floorDiv(r.Height()-height, 2),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
