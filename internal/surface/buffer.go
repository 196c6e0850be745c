// Package surface turns a decoded image into the byte layout used by native
// off-screen composition surfaces: 32-bit blue-green-red-alpha pixels, rows
// top to bottom, straight (non-premultiplied) alpha.
package surface

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = 4

// Buffer is an immutable BGRA pixel buffer. Pix holds Width*Height pixels,
// rows top to bottom with no padding. Callers must not modify Pix once the
// buffer is built; it is shared by every overlay window.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// Stride returns the number of bytes in one row.
func (b *Buffer) Stride() int { return b.Width * BytesPerPixel }

// Len returns the expected byte length of Pix.
func (b *Buffer) Len() int { return b.Width * b.Height * BytesPerPixel }

// Build converts img into a Buffer, reordering channels from RGBA to BGRA.
// Dimensions and row order are preserved; alpha is not premultiplied.
func Build(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDecode)
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrDecode, bounds.Dx(), bounds.Dy())
	}

	src := toNRGBA(img)
	buf := &Buffer{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	buf.Pix = make([]byte, buf.Len())

	stride := buf.Stride()
	for y := 0; y < buf.Height; y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+stride]
		out := buf.Pix[y*stride : (y+1)*stride]
		for i := 0; i < stride; i += BytesPerPixel {
			out[i+0] = in[i+2]
			out[i+1] = in[i+1]
			out[i+2] = in[i+0]
			out[i+3] = in[i+3]
		}
	}
	return buf, nil
}

// toNRGBA returns img as straight-alpha RGBA with its origin at (0,0).
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok {
		return &image.NRGBA{
			Pix:    n.Pix[n.PixOffset(bounds.Min.X, bounds.Min.Y):],
			Stride: n.Stride,
			Rect:   image.Rect(0, 0, bounds.Dx(), bounds.Dy()),
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
