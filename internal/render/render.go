// Package render defines the drawing, texture and pointer collaborators the
// simulation core talks to. The core never owns a window; a host loop hands
// it a Renderer once per frame.
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Texture is an opaque handle to image data owned by a TextureLoader.
type Texture interface {
	Width() int
	Height() int
}

// Region selects a sub-rectangle of a texture in texel units.
type Region struct {
	X, Y, W, H float64
}

// FullRegion covers the whole texture.
func FullRegion(tex Texture) Region {
	return Region{W: float64(tex.Width()), H: float64(tex.Height())}
}

// Renderer draws primitives. Rotation is in radians; every shape is centered
// on the given point.
type Renderer interface {
	DrawTexture(tex Texture, src Region, center, size mgl64.Vec2, rotation float64, tint color.RGBA)
	DrawCircle(center mgl64.Vec2, radius float64, fill color.RGBA)
	DrawRect(center, size mgl64.Vec2, rotation float64, fill color.RGBA)
}

// Batcher is implemented by renderers that can flush their draw queue
// between groups of calls.
type Batcher interface {
	BeginBatch()
	EndBatch()
}

// TextureLoader loads textures from disk.
type TextureLoader interface {
	Load(path string) (Texture, error)
}

// Pointer is polled once per tick for cursor position and primary button.
type Pointer interface {
	Position() mgl64.Vec2
	Down() bool
}

// WithAlpha returns c with its alpha channel set from a [0,1] fraction.
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha * 255)
	return c
}

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.RGBA{R: 130, G: 130, B: 130, A: 255}
	Blank = color.RGBA{}
)
