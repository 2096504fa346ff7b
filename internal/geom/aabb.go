package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box in screen space (y grows downward).
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// FromCenter creates an AABB from a center point and full size.
func FromCenter(center, size mgl64.Vec2) AABB {
	half := size.Mul(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

func (a AABB) Center() mgl64.Vec2 { return a.Min.Add(a.Max).Mul(0.5) }
func (a AABB) Size() mgl64.Vec2   { return a.Max.Sub(a.Min) }

// Overlaps reports strict overlap; boxes that only share an edge do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Max.X() > b.Min.X() && a.Min.X() < b.Max.X() &&
		a.Max.Y() > b.Min.Y() && a.Min.Y() < b.Max.Y()
}

// Contains reports whether p lies inside a, edges included.
func (a AABB) Contains(p mgl64.Vec2) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y()
}

// Penetration holds the four directed overlap depths of a moving box into a
// static one. Top is how far the mover's bottom edge sits below the static
// top edge, and so on for the other faces.
type Penetration struct {
	Left, Right, Top, Bottom float64
}

// Min returns the smallest of the four depths.
func (p Penetration) Min() float64 {
	return math.Min(math.Min(p.Left, p.Right), math.Min(p.Top, p.Bottom))
}

// Face names the face of the static box the mover is pushed out through.
type Face int

const (
	FaceLeft Face = iota
	FaceRight
	FaceTop
	FaceBottom
)

func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	default:
		return "bottom"
	}
}

// Face returns the face with minimum depth. Ties prefer left, right, top,
// bottom in that order.
func (p Penetration) Face() Face {
	switch m := p.Min(); m {
	case p.Left:
		return FaceLeft
	case p.Right:
		return FaceRight
	case p.Top:
		return FaceTop
	default:
		return FaceBottom
	}
}

// PenetrationInto computes the directed depths of mover into static. The
// result is only meaningful when the boxes overlap.
func PenetrationInto(mover, static AABB) Penetration {
	return Penetration{
		Left:   mover.Max.X() - static.Min.X(),
		Right:  static.Max.X() - mover.Min.X(),
		Top:    mover.Max.Y() - static.Min.Y(),
		Bottom: static.Max.Y() - mover.Min.Y(),
	}
}
