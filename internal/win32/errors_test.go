//go:build windows

package win32

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestCallError_KeepsErrno(t *testing.T) {
	err := callError("CreateWindowExW", syscall.Errno(1400))
	if err.ErrorCode() != 1400 {
		t.Fatalf("expected code 1400, got %d", err.ErrorCode())
	}
	if !errors.Is(err, syscall.Errno(1400)) {
		t.Fatal("expected errno in the chain")
	}
}

func TestCallError_NoErrno(t *testing.T) {
	err := callError("GetDC", errors.New("not an errno"))
	if err.ErrorCode() != 0 {
		t.Fatalf("expected code 0, got %d", err.ErrorCode())
	}
	if err.Unwrap() != nil {
		t.Fatal("expected nothing to unwrap")
	}
}

func TestIsClassExists(t *testing.T) {
	if !IsClassExists(fmt.Errorf("register: %w", callError("RegisterClassExW", errClassExists))) {
		t.Fatal("expected ERROR_CLASS_ALREADY_EXISTS to be recognised")
	}
	if IsClassExists(callError("RegisterClassExW", syscall.Errno(5))) {
		t.Fatal("access denied is not an existing class")
	}
	if IsClassExists(nil) {
		t.Fatal("nil is not an existing class")
	}
}

func TestOverlayExStyle(t *testing.T) {
	for _, bit := range []uint32{wsExLayered, wsExTransparent, wsExTopmost, wsExNoActivate, wsExToolWindow} {
		if overlayExStyle&bit == 0 {
			t.Fatalf("expected style bit 0x%08x to be set", bit)
		}
	}
	if wsExNoActivate != 0x08000000 {
		t.Fatalf("WS_EX_NOACTIVATE must be 0x08000000, got 0x%08x", wsExNoActivate)
	}
}
