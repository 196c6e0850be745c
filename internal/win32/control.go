//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const (
	controlWidth  = 300
	controlHeight = 150
)

var (
	controlMu      sync.Mutex
	controlOnClose func()

	controlProc = windows.NewCallback(controlWindowProc)
)

func controlWindowProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if msg == win.WM_CLOSE {
		controlMu.Lock()
		onClose := controlOnClose
		controlMu.Unlock()
		if onClose != nil {
			onClose()
			return 0
		}
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// CreateControl shows a small window titled title, centred on the primary
// monitor. WM_CLOSE calls onClose and leaves the window alive; the caller
// destroys it with DestroyWindow. The class is registered on first use.
func CreateControl(class, title string, onClose func()) (win.HWND, error) {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	windowName, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}

	controlMu.Lock()
	controlOnClose = onClose
	controlMu.Unlock()

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = controlProc
	wc.HInstance = win.GetModuleHandle(nil)
	wc.HbrBackground = win.HBRUSH(win.COLOR_BTNFACE + 1)
	wc.LpszClassName = className

	if r, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
		if err := callError("RegisterClassExW", callErr); !IsClassExists(err) {
			return 0, err
		}
	}

	x := (int(win.GetSystemMetrics(win.SM_CXSCREEN)) - controlWidth) / 2
	y := (int(win.GetSystemMetrics(win.SM_CYSCREEN)) - controlHeight) / 2
	hwnd, _, callErr := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		controlStyle,
		uintptr(int32(x)), uintptr(int32(y)),
		controlWidth, controlHeight,
		0, 0,
		uintptr(win.GetModuleHandle(nil)),
		0,
	)
	if hwnd == 0 {
		return 0, callError("CreateWindowExW", callErr)
	}
	win.ShowWindow(win.HWND(hwnd), win.SW_SHOW)
	win.UpdateWindow(win.HWND(hwnd))
	return win.HWND(hwnd), nil
}
