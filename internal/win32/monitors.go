//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// Monitor is one display reported by EnumDisplayMonitors.
type Monitor struct {
	Handle  win.HMONITOR
	Device  string
	Rect    win.RECT
	Primary bool
}

type monitorInfoEx struct {
	win.MONITORINFO
	Device [cchDeviceName]uint16
}

var (
	enumMu   sync.Mutex
	enumList []Monitor
	enumErr  error

	monitorEnumProc = windows.NewCallback(enumMonitor)
)

func enumMonitor(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, data uintptr) uintptr {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	r, _, callErr := procGetMonitorInfoW.Call(uintptr(hMonitor), uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		enumErr = callError("GetMonitorInfoW", callErr)
		return 0
	}

	enumList = append(enumList, Monitor{
		Handle:  hMonitor,
		Device:  windows.UTF16ToString(info.Device[:]),
		Rect:    info.RcMonitor,
		Primary: info.DwFlags&monitorPrimary != 0,
	})
	return 1
}

// Monitors returns every display in enumeration order with its full
// rectangle in virtual-screen coordinates.
func Monitors() ([]Monitor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumList = nil
	enumErr = nil

	r, _, callErr := procEnumDisplayMonitors.Call(0, 0, monitorEnumProc, 0)
	if enumErr != nil {
		return nil, enumErr
	}
	if r == 0 {
		return nil, callError("EnumDisplayMonitors", callErr)
	}

	list := enumList
	enumList = nil
	return list, nil
}
