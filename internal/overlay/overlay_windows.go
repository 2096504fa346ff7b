//go:build windows

package overlay

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sys/windows"
)

const (
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	vkLButton      = 0x01
	keyDownBit     = 0x8000
)

// GWL_EXSTYLE is negative; keep it in a variable so the uintptr conversion
// happens at run time.
var gwlExStyle int32 = -20

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetWindowLongPtr = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr = user32.NewProc("SetWindowLongPtrW")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")

	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procSetLastError = kernel32.NewProc("SetLastError")
)

type point struct {
	X, Y int32
}

// hideFromTaskbar turns the window into a tool window, which the shell does
// not list in the taskbar or alt-tab.
func hideFromTaskbar(hwnd uintptr) error {
	if err := procGetWindowLongPtr.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrTaskbar, err)
	}
	if err := procSetWindowLongPtr.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrTaskbar, err)
	}

	index := uintptr(gwlExStyle)
	procSetLastError.Call(0)
	style, _, err := procGetWindowLongPtr.Call(hwnd, index)
	if callFailed(style, err) {
		return fmt.Errorf("%w: %v", ErrTaskbar, err)
	}

	procSetLastError.Call(0)
	prev, _, err := procSetWindowLongPtr.Call(hwnd, index, style&^wsExAppWindow|wsExToolWindow)
	if callFailed(prev, err) {
		return fmt.Errorf("%w: %v", ErrTaskbar, err)
	}
	return nil
}

func (Cursor) Position() mgl64.Vec2 {
	var p point
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	return mgl64.Vec2{float64(p.X), float64(p.Y)}
}

func (Cursor) Down() bool {
	state, _, _ := procGetAsyncKeyState.Call(vkLButton)
	return state&keyDownBit != 0
}
