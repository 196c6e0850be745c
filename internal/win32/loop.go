//go:build windows

package win32

import (
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// RunMessageLoop pumps messages for the calling thread until WM_QUIT.
func RunMessageLoop() error {
	var msg win.MSG
	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0:
			return nil
		case -1:
			return callError("GetMessageW", windows.GetLastError())
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

// PostQuit posts WM_QUIT to the calling thread's queue.
func PostQuit() {
	win.PostQuitMessage(0)
}
