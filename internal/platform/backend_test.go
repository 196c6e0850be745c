package platform

import "testing"

func TestRegion(t *testing.T) {
	r := Region{Left: -1280, Top: 0, Right: 0, Bottom: 1024}
	if r.Width() != 1280 || r.Height() != 1024 {
		t.Fatalf("expected 1280x1024, got %dx%d", r.Width(), r.Height())
	}
	if got := r.String(); got != "(-1280,0)-(0,1024)" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Display{Index: 2, Name: `\\.\DISPLAY3`}).Label(); got != `\\.\DISPLAY3` {
		t.Fatalf("expected device name, got %q", got)
	}
	if got := (Display{Index: 2}).Label(); got != "display2" {
		t.Fatalf("expected fallback label, got %q", got)
	}
}
