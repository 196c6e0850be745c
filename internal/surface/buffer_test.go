package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func syntheticNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*37 + y),
				G: uint8(y*53 + 7),
				B: uint8(x ^ y),
				A: uint8((x + y) * 29),
			})
		}
	}
	return img
}

func checkBGRA(t *testing.T, buf *Buffer, src image.Image) {
	t.Helper()
	bounds := src.Bounds()
	if buf.Width != bounds.Dx() || buf.Height != bounds.Dy() {
		t.Fatalf("expected %dx%d, got %dx%d", bounds.Dx(), bounds.Dy(), buf.Width, buf.Height)
	}
	if len(buf.Pix) != buf.Width*buf.Height*4 {
		t.Fatalf("expected %d bytes, got %d", buf.Width*buf.Height*4, len(buf.Pix))
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			want := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*buf.Width + x) * 4
			got := buf.Pix[i : i+4]
			if got[0] != want.B || got[1] != want.G || got[2] != want.R || got[3] != want.A {
				t.Fatalf("pixel (%d,%d): expected BGRA %v, got %v", x, y, []byte{want.B, want.G, want.R, want.A}, got)
			}
		}
	}
}

func TestBuild_ReordersChannelsToBGRA(t *testing.T) {
	src := syntheticNRGBA(7, 5)
	buf, err := Build(src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	checkBGRA(t, buf, src)
}

func TestBuild_DoesNotPremultiplyAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	buf, err := Build(src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []byte{50, 100, 200, 128}
	for i := range want {
		if buf.Pix[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, buf.Pix)
		}
	}
}

func TestBuild_SubImageKeepsRowOrder(t *testing.T) {
	full := syntheticNRGBA(10, 8)
	sub := full.SubImage(image.Rect(3, 2, 9, 7))

	buf, err := Build(sub)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if buf.Width != 6 || buf.Height != 5 {
		t.Fatalf("expected 6x5, got %dx%d", buf.Width, buf.Height)
	}
	checkBGRA(t, buf, sub)
}

func TestBuild_OpaqueSourcesGetFullAlpha(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(1, 1, color.Gray{Y: 90})

	buf, err := Build(src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	i := (1*3 + 1) * 4
	if got := buf.Pix[i : i+4]; got[0] != 90 || got[1] != 90 || got[2] != 90 || got[3] != 255 {
		t.Fatalf("expected gray 90 opaque, got %v", got)
	}
	checkBGRA(t, buf, src)
}

func TestBuild_PalettedTransparency(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{255, 0, 0, 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	src.SetColorIndex(1, 0, 1)

	buf, err := Build(src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []byte{0, 0, 0, 0, 0, 0, 255, 255}
	for i := range want {
		if buf.Pix[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, buf.Pix)
		}
	}
}

func TestBuild_EmptyImageIsDecodeError(t *testing.T) {
	_, err := Build(image.NewNRGBA(image.Rect(0, 0, 0, 4)))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	_, err = Build(nil)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for nil image, got %v", err)
	}
}
