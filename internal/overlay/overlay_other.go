//go:build !windows

package overlay

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render/rlrender"
)

// Other platforms keep their taskbar entry.
func hideFromTaskbar(uintptr) error { return nil }

// Without a global hook the cursor is only seen while it is over the
// window, and not at all when the window is click-through.
func (Cursor) Position() mgl64.Vec2 { return rlrender.Mouse{}.Position() }
func (Cursor) Down() bool           { return rlrender.Mouse{}.Down() }
