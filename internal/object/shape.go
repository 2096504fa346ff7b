package object

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

// Shape is a filled rectangle.
type Shape struct {
	Color color.RGBA

	position mgl64.Vec2
	rotation float64
	size     mgl64.Vec2
}

func NewShape(position, size mgl64.Vec2, c color.RGBA) *Shape {
	return &Shape{Color: c, position: position, size: size}
}

func (s *Shape) Draw(r render.Renderer) {
	r.DrawRect(s.position, s.size, s.rotation, s.Color)
}

func (s *Shape) Update(float64) {}

func (s *Shape) Position() mgl64.Vec2     { return s.position }
func (s *Shape) SetPosition(p mgl64.Vec2) { s.position = p }
func (s *Shape) Rotation() float64        { return s.rotation }
func (s *Shape) SetRotation(r float64)    { s.rotation = r }
func (s *Shape) Size() mgl64.Vec2         { return s.size }
