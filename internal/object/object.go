// Package object holds the drawable things that live on the overlay: plain
// textured quads, filled shapes, sprite-sheet animations and the physics
// wrapper that lets any of them take part in a physics.World.
package object

import (
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/render"
)

// GameObject is something the host loop updates and draws every frame.
type GameObject interface {
	physics.Positionable
	Draw(r render.Renderer)
	Update(dt float64)
}
