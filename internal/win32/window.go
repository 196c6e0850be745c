//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// MessageHandler receives every message sent to an overlay window. It
// returns true when the message was handled; otherwise DefWindowProc runs.
type MessageHandler func(hwnd win.HWND, msg uint32) bool

var (
	handlerMu sync.RWMutex
	handler   MessageHandler

	// One callback for the process: NewCallback slots are never released.
	wndProc = windows.NewCallback(windowProc)
)

func windowProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()

	if h != nil && h(hwnd, msg) {
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// RegisterClass registers the overlay window class and routes its messages
// to h. If the class already exists the handler is still installed and the
// returned error satisfies IsClassExists.
func RegisterClass(name string, h MessageHandler) error {
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}

	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = wndProc
	wc.HInstance = win.GetModuleHandle(nil)
	wc.LpszClassName = className

	r, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if r == 0 {
		return callError("RegisterClassExW", callErr)
	}
	return nil
}

// CreateOverlay creates a hidden borderless overlay window of the given
// class at (x, y) with size w x h.
func CreateOverlay(class string, x, y, w, h int) (win.HWND, error) {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}

	hwnd, _, callErr := procCreateWindowExW.Call(
		overlayExStyle,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		wsPopup,
		uintptr(int32(x)), uintptr(int32(y)),
		uintptr(int32(w)), uintptr(int32(h)),
		0, 0,
		uintptr(win.GetModuleHandle(nil)),
		0,
	)
	if hwnd == 0 {
		return 0, callError("CreateWindowExW", callErr)
	}
	return win.HWND(hwnd), nil
}

// DestroyWindow destroys hwnd. WM_DESTROY is delivered synchronously.
func DestroyWindow(hwnd win.HWND) error {
	r, _, callErr := procDestroyWindow.Call(uintptr(hwnd))
	if r == 0 {
		return callError("DestroyWindow", callErr)
	}
	return nil
}

// PostClose queues WM_CLOSE to hwnd. Safe from any thread.
func PostClose(hwnd win.HWND) error {
	r, _, callErr := procPostMessageW.Call(uintptr(hwnd), win.WM_CLOSE, 0, 0)
	if r == 0 {
		return callError("PostMessageW", callErr)
	}
	return nil
}

// ShowTopmost shows hwnd without activating it and moves it to the top of
// the topmost band.
func ShowTopmost(hwnd win.HWND) error {
	r, _, callErr := procSetWindowPos.Call(
		uintptr(hwnd),
		hwndTopmost,
		0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate|swpShowWindow,
	)
	if r == 0 {
		return callError("SetWindowPos", callErr)
	}
	return nil
}
