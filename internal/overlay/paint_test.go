package overlay

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/1broseidon/overlay/internal/platform"
)

func TestPaint_StepsInOrderAndReleasesInReverse(t *testing.T) {
	c := &fakeCompositor{}
	buf := testBuffer(4, 3)
	dst := platform.Point{X: 910, Y: 515}

	if err := Paint(c, 42, dst, buf); err != nil {
		t.Fatalf("paint: %v", err)
	}

	want := []string{
		"screen", "context", "surface", "select", "show", "composite",
		"deselect", "delete-surface", "delete-context", "release-screen",
	}
	if !reflect.DeepEqual(c.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, c.calls)
	}
	if c.dst != dst {
		t.Fatalf("expected composite at %+v, got %+v", dst, c.dst)
	}
	if c.size != [2]int{4, 3} {
		t.Fatalf("expected composite size 4x3, got %v", c.size)
	}
}

func TestPaint_CopiesBufferVerbatim(t *testing.T) {
	c := &fakeCompositor{}
	buf := testBuffer(5, 2)
	orig := append([]byte(nil), buf.Pix...)

	if err := Paint(c, 1, platform.Point{}, buf); err != nil {
		t.Fatalf("paint: %v", err)
	}
	if !bytes.Equal(c.surface, buf.Pix) {
		t.Fatal("surface memory does not match the pixel buffer")
	}
	if !bytes.Equal(buf.Pix, orig) {
		t.Fatal("paint must not modify the shared pixel buffer")
	}
}

func TestPaint_CompositeFailureStillReleasesEverything(t *testing.T) {
	c := &fakeCompositor{failAt: "composite"}
	err := Paint(c, 1, platform.Point{}, testBuffer(2, 2))
	if err == nil {
		t.Fatal("expected composite failure")
	}
	if ErrorCode(err) != 87 {
		t.Fatalf("expected platform code 87 to survive wrapping, got %d", ErrorCode(err))
	}

	want := []string{
		"screen", "context", "surface", "select", "show", "composite",
		"deselect", "delete-surface", "delete-context", "release-screen",
	}
	if !reflect.DeepEqual(c.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, c.calls)
	}
}

func TestPaint_FailedAcquisitionReleasesOnlyWhatWasAcquired(t *testing.T) {
	cases := map[string][]string{
		"screen":  {"screen"},
		"context": {"screen", "context", "release-screen"},
		"surface": {"screen", "context", "surface", "delete-context", "release-screen"},
		"select":  {"screen", "context", "surface", "select", "delete-surface", "delete-context", "release-screen"},
		"show":    {"screen", "context", "surface", "select", "show", "deselect", "delete-surface", "delete-context", "release-screen"},
	}
	for failAt, want := range cases {
		c := &fakeCompositor{failAt: failAt}
		if err := Paint(c, 1, platform.Point{}, testBuffer(1, 1)); err == nil {
			t.Fatalf("%s: expected failure", failAt)
		}
		if !reflect.DeepEqual(c.calls, want) {
			t.Fatalf("%s: expected calls %v, got %v", failAt, want, c.calls)
		}
	}
}

type shortSurfaceCompositor struct{ *fakeCompositor }

func (c shortSurfaceCompositor) CreateSurface(ctx platform.Handle, width, height int) (platform.Handle, []byte, error) {
	c.calls = append(c.calls, "surface")
	return 3, make([]byte, 3), nil
}

func TestPaint_ShortSurfaceMemoryFails(t *testing.T) {
	inner := &fakeCompositor{}
	if err := Paint(shortSurfaceCompositor{inner}, 1, platform.Point{}, testBuffer(2, 2)); err == nil {
		t.Fatal("expected error for undersized surface")
	}
	want := []string{"screen", "context", "surface", "delete-surface", "delete-context", "release-screen"}
	if !reflect.DeepEqual(inner.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, inner.calls)
	}
}
