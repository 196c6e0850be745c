package runtimepath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExecutableDir_IsAbsoluteDirectory(t *testing.T) {
	dir, err := ExecutableDir()
	if err != nil {
		t.Fatalf("ExecutableDir() error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Fatalf("ExecutableDir() = %q, want absolute path", dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("ExecutableDir() = %q is not a directory (%v)", dir, err)
	}
}

func TestResolve_RelativeJoinsBase(t *testing.T) {
	base := t.TempDir()
	got, err := Resolve(base, "overlay.png")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := filepath.Join(base, "overlay.png"); got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_AbsoluteIgnoresBase(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "images", "..", "overlay.png")
	got, err := Resolve("/somewhere/else", abs)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != filepath.Clean(abs) {
		t.Fatalf("Resolve() = %q, want %q", got, filepath.Clean(abs))
	}
}

func TestResolve_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	got, err := Resolve("/base", "~/pics/overlay.png")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := filepath.Join(home, "pics", "overlay.png"); got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_EmptyPathFails(t *testing.T) {
	if _, err := Resolve("/base", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	if err != nil {
		t.Fatalf("ExecutableDir() error: %v", err)
	}
	got, err := InExecutableDir("overlay.png")
	if err != nil {
		t.Fatalf("InExecutableDir() error: %v", err)
	}
	if want := filepath.Join(dir, "overlay.png"); got != want {
		t.Fatalf("InExecutableDir() = %q, want %q", got, want)
	}
}
