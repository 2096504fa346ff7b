package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
)

// ApplyGravity adds the weight force g*m.
func ApplyGravity(b *Body, g mgl64.Vec2) {
	if b.fixed {
		return
	}
	b.ApplyForce(g.Mul(b.Mass))
}

// ApplyDrag adds a force opposing velocity, linear in speed.
func ApplyDrag(b *Body, coefficient float64) {
	if b.fixed {
		return
	}
	b.ApplyForce(b.Velocity.Mul(-coefficient))
}

// ApplySpring pulls a toward b with a damped Hooke spring. Only a is pushed.
func ApplySpring(a, b *Body, restLength, stiffness, damping float64) {
	if a.fixed {
		return
	}
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	if dist < geom.Epsilon {
		return
	}
	spring := geom.Normalize(d).Mul((dist - restLength) * stiffness)
	damp := b.Velocity.Sub(a.Velocity).Mul(damping)
	a.ApplyForce(spring.Add(damp))
}

// ApplyRepulsion pushes a away from b when closer than minDistance, falling
// off linearly to zero at minDistance.
func ApplyRepulsion(a, b *Body, minDistance, strength float64) {
	if a.fixed {
		return
	}
	d := a.Position.Sub(b.Position)
	dist := d.Len()
	if dist < geom.Epsilon || dist >= minDistance {
		return
	}
	a.ApplyForce(geom.Normalize(d).Mul(strength * (1 - dist/minDistance)))
}

// ApplyFriction opposes motion with magnitude normal*friction.
func ApplyFriction(b *Body, normal float64) {
	if b.fixed {
		return
	}
	dir := geom.Normalize(b.Velocity)
	if dir == (mgl64.Vec2{}) {
		return
	}
	b.ApplyForce(dir.Mul(-normal * b.Friction))
}
