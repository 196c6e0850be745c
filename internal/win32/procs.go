//go:build windows

// Package win32 drives layered overlay windows through user32 and gdi32.
// All functions must be called from the thread that runs the message loop,
// except PostClose.
package win32

import (
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procRegisterClassExW    = user32.NewProc("RegisterClassExW")
	procCreateWindowExW     = user32.NewProc("CreateWindowExW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procUpdateLayeredWindow = user32.NewProc("UpdateLayeredWindow")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procGetDC               = user32.NewProc("GetDC")

	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
)

// Extended styles of an overlay window: per-pixel alpha, mouse input passes
// through, above every non-topmost window, never activated, and kept out of
// the taskbar and Alt-Tab.
const (
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
	wsExTopmost     = 0x00000008
	wsExNoActivate  = 0x08000000
	wsExToolWindow  = 0x00000080

	overlayExStyle = wsExLayered | wsExTransparent | wsExTopmost | wsExNoActivate | wsExToolWindow

	wsPopup = 0x80000000

	// Control window: a normal captioned window without a maximize box.
	wsOverlappedWindow = 0x00CF0000
	wsMaximizeBox      = 0x00010000
	controlStyle       = wsOverlappedWindow &^ wsMaximizeBox
)

const (
	swpNoSize      = 0x0001
	swpNoMove      = 0x0002
	swpNoActivate  = 0x0010
	swpShowWindow  = 0x0040
	hwndTopmost    = ^uintptr(0)
	ulwAlpha       = 0x00000002
	acSrcOver      = 0x00
	acSrcAlpha     = 0x01
	constantOpaque = 255
	dibRGBColors   = 0
	errClassExists = syscall.Errno(1410)
	monitorPrimary = 0x00000001
	cchDeviceName  = 32
)
