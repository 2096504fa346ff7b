package object

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

// Textured draws a whole texture stretched to its size. Without a texture it
// draws a filled rectangle instead.
type Textured struct {
	Texture render.Texture
	Tint    color.RGBA

	position mgl64.Vec2
	rotation float64
	size     mgl64.Vec2
}

func NewTextured(tex render.Texture, position, size mgl64.Vec2, rotation float64) *Textured {
	return &Textured{
		Texture:  tex,
		Tint:     render.White,
		position: position,
		rotation: rotation,
		size:     size,
	}
}

func (t *Textured) Draw(r render.Renderer) {
	if t.Texture == nil {
		r.DrawRect(t.position, t.size, t.rotation, render.Gray)
		return
	}
	r.DrawTexture(t.Texture, render.FullRegion(t.Texture), t.position, t.size, t.rotation, t.Tint)
}

func (t *Textured) Update(float64) {}

func (t *Textured) Position() mgl64.Vec2     { return t.position }
func (t *Textured) SetPosition(p mgl64.Vec2) { t.position = p }
func (t *Textured) Rotation() float64        { return t.rotation }
func (t *Textured) SetRotation(r float64)    { t.rotation = r }
func (t *Textured) Size() mgl64.Vec2         { return t.size }
