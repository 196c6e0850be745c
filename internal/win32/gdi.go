//go:build windows

package win32

import (
	"unsafe"

	"github.com/lxn/win"
)

const hgdiError = 0xFFFFFFFF

// ScreenDC returns the device context of the whole screen.
func ScreenDC() (win.HDC, error) {
	r, _, callErr := procGetDC.Call(0)
	if r == 0 {
		return 0, callError("GetDC", callErr)
	}
	return win.HDC(r), nil
}

// ReleaseScreenDC releases a context obtained from ScreenDC.
func ReleaseScreenDC(hdc win.HDC) {
	win.ReleaseDC(0, hdc)
}

// CreateCompatibleDC creates a memory context compatible with hdc.
func CreateCompatibleDC(hdc win.HDC) (win.HDC, error) {
	r, _, callErr := procCreateCompatibleDC.Call(uintptr(hdc))
	if r == 0 {
		return 0, callError("CreateCompatibleDC", callErr)
	}
	return win.HDC(r), nil
}

// DeleteDC deletes a memory context.
func DeleteDC(hdc win.HDC) {
	win.DeleteDC(hdc)
}

// CreateDIB creates a top-down 32bpp DIB section of w x h pixels and
// returns its pixel memory. The memory is owned by the bitmap and is valid
// until DeleteObject.
func CreateDIB(hdc win.HDC, w, h int) (win.HBITMAP, []byte, error) {
	var bi win.BITMAPINFO
	bi.BmiHeader.BiSize = uint32(unsafe.Sizeof(bi.BmiHeader))
	bi.BmiHeader.BiWidth = int32(w)
	bi.BmiHeader.BiHeight = -int32(h)
	bi.BmiHeader.BiPlanes = 1
	bi.BmiHeader.BiBitCount = 32
	bi.BmiHeader.BiCompression = win.BI_RGB

	var bits unsafe.Pointer
	r, _, callErr := procCreateDIBSection.Call(
		uintptr(hdc),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
		uintptr(unsafe.Pointer(&bits)),
		0, 0,
	)
	if r == 0 || bits == nil {
		return 0, nil, callError("CreateDIBSection", callErr)
	}
	return win.HBITMAP(r), unsafe.Slice((*byte)(bits), w*h*4), nil
}

// SelectObject selects obj into hdc and returns the previously selected
// object.
func SelectObject(hdc win.HDC, obj win.HGDIOBJ) (win.HGDIOBJ, error) {
	r, _, callErr := procSelectObject.Call(uintptr(hdc), uintptr(obj))
	if r == 0 || r == hgdiError {
		return 0, callError("SelectObject", callErr)
	}
	return win.HGDIOBJ(r), nil
}

// DeleteObject deletes a GDI object such as a DIB section.
func DeleteObject(obj win.HGDIOBJ) {
	win.DeleteObject(obj)
}

// UpdateLayered composites the w x h bitmap selected into mem onto hwnd,
// placing the window's top-left corner at (x, y). Per-pixel alpha is taken
// from the bitmap and the constant alpha is fully opaque.
func UpdateLayered(hwnd win.HWND, screen, mem win.HDC, x, y, w, h int) error {
	dst := win.POINT{X: int32(x), Y: int32(y)}
	size := win.SIZE{CX: int32(w), CY: int32(h)}
	src := win.POINT{}
	blend := win.BLENDFUNCTION{
		BlendOp:             acSrcOver,
		BlendFlags:          0,
		SourceConstantAlpha: constantOpaque,
		AlphaFormat:         acSrcAlpha,
	}

	r, _, callErr := procUpdateLayeredWindow.Call(
		uintptr(hwnd),
		uintptr(screen),
		uintptr(unsafe.Pointer(&dst)),
		uintptr(unsafe.Pointer(&size)),
		uintptr(mem),
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		ulwAlpha,
	)
	if r == 0 {
		return callError("UpdateLayeredWindow", callErr)
	}
	return nil
}
