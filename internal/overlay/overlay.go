// Package overlay opens the transparent, borderless desktop window and
// provides the cursor that works while the window ignores the mouse.
package overlay

import (
	"errors"
	"log"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/deskstead/internal/config"
)

var (
	ErrWindow  = errors.New("overlay: window did not open")
	ErrTaskbar = errors.New("overlay: cannot hide taskbar entry")
)

// Flags maps the window config onto raylib config flags, one bit per option.
func Flags(cfg config.WindowConfig) uint32 {
	var flags uint32
	for _, f := range []struct {
		on  bool
		bit uint32
	}{
		{cfg.Undecorated, rl.FlagWindowUndecorated},
		{cfg.Transparent, rl.FlagWindowTransparent},
		{cfg.ClickThrough, rl.FlagWindowMousePassthrough},
		{cfg.Topmost, rl.FlagWindowTopmost},
		{cfg.Unfocused, rl.FlagWindowUnfocused},
		{cfg.VSync, rl.FlagVsyncHint},
		{cfg.MSAA, rl.FlagMsaa4xHint},
	} {
		if f.on {
			flags |= f.bit
		}
	}
	return flags
}

// callFailed reports whether a Win32 call that may legitimately return zero
// failed: a zero result only counts when the last error is set.
func callFailed(ret uintptr, err error) bool {
	if ret != 0 {
		return false
	}
	errno, ok := err.(syscall.Errno)
	return ok && errno != 0
}

// Window is the open overlay. Only one may exist at a time.
type Window struct {
	cfg config.WindowConfig
}

// Open creates the window. Zero dimensions cover the current monitor.
func Open(cfg config.WindowConfig) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(Flags(cfg))
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, ErrWindow
	}
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	if cfg.HideTaskbar {
		if err := hideFromTaskbar(uintptr(rl.GetWindowHandle())); err != nil {
			log.Printf("Overlay: %v", err)
		}
	}
	return &Window{cfg: cfg}, nil
}

func (w *Window) Size() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

func (w *Window) ShouldClose() bool  { return rl.WindowShouldClose() }
func (w *Window) FrameTime() float64 { return float64(rl.GetFrameTime()) }
func (w *Window) Close()             { rl.CloseWindow() }

// Frame clears to fully transparent, runs draw and presents.
func (w *Window) Frame(draw func()) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Blank)
	draw()
	rl.EndDrawing()
}

// Cursor reports the desktop cursor and primary button. On Windows it reads
// the global state so it keeps working while the window is click-through.
type Cursor struct{}
