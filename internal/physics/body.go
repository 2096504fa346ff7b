package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
)

const (
	// MaxSpeed caps body speed in px/s.
	MaxSpeed = 2000.0

	DefaultMass        = 1.0
	DefaultRestitution = 0.5
	DefaultFriction    = 0.1
)

var DefaultSize = mgl64.Vec2{50, 50}

// Body is a 2-D point mass with an axis-aligned box centered on Position.
// A fixed body never moves and always has zero velocity, acceleration and
// accumulated force.
type Body struct {
	Position     mgl64.Vec2
	Velocity     mgl64.Vec2
	Acceleration mgl64.Vec2
	Size         mgl64.Vec2
	Mass         float64
	Restitution  float64
	Friction     float64

	fixed bool
	force mgl64.Vec2
}

// NewBody validates the arguments and returns a body with default
// restitution and friction.
func NewBody(position, size mgl64.Vec2, mass float64, fixed bool) (*Body, error) {
	if size.X() <= 0 || size.Y() <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSize, size)
	}
	if !fixed && !(mass > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidMass, mass)
	}
	b := &Body{
		Position:    position,
		Size:        size,
		Mass:        mass,
		Restitution: DefaultRestitution,
		Friction:    DefaultFriction,
	}
	b.SetFixed(fixed)
	return b, nil
}

func (b *Body) Fixed() bool          { return b.fixed }
func (b *Body) Force() mgl64.Vec2    { return b.force }
func (b *Body) Bounds() geom.AABB    { return geom.FromCenter(b.Position, b.Size) }
func (b *Body) HalfSize() mgl64.Vec2 { return b.Size.Mul(0.5) }

// SetFixed toggles the static flag. Fixing a body zeroes its kinetic state.
func (b *Body) SetFixed(fixed bool) {
	b.fixed = fixed
	if fixed {
		b.Stop()
		b.force = mgl64.Vec2{}
	}
}

func (b *Body) SetRestitution(e float64) {
	b.Restitution = geom.Clamp(e, 0, 1)
}

func (b *Body) SetFriction(f float64) {
	if f < 0 {
		f = 0
	}
	b.Friction = f
}

// ApplyForce adds f to the force accumulated for the next Integrate.
func (b *Body) ApplyForce(f mgl64.Vec2) {
	if b.fixed {
		return
	}
	b.force = b.force.Add(f)
}

// ApplyImpulse changes velocity immediately by j/mass. Bodies without a
// positive mass ignore impulses.
func (b *Body) ApplyImpulse(j mgl64.Vec2) {
	if b.fixed || !(b.Mass > 0) {
		return
	}
	b.Velocity = b.Velocity.Add(j.Mul(1 / b.Mass))
}

// Stop zeroes velocity and acceleration.
func (b *Body) Stop() {
	b.Velocity = mgl64.Vec2{}
	b.Acceleration = mgl64.Vec2{}
}

// Jump applies an upward force of the given magnitude.
func (b *Body) Jump(force float64) {
	b.ApplyForce(mgl64.Vec2{0, -force})
}

// Integrate advances the body by dt using semi-implicit Euler and clears the
// accumulated force.
func (b *Body) Integrate(dt float64) {
	b.integrate(dt, MaxSpeed)
}

// integrate is Integrate with a speed limit; limit <= 0 leaves speed unbounded.
func (b *Body) integrate(dt, limit float64) {
	if b.fixed {
		b.Stop()
		b.force = mgl64.Vec2{}
		return
	}

	b.Acceleration = geom.Div(b.force, b.Mass)
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
	if limit > 0 {
		b.Velocity = geom.ClampLength(b.Velocity, limit)
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.force = mgl64.Vec2{}
}

// Finite reports whether all kinetic state is free of NaN and Inf.
func (b *Body) Finite() bool {
	return geom.Finite(b.Position) && geom.Finite(b.Velocity) && geom.Finite(b.Acceleration)
}

// KineticEnergy returns 0.5*m*|v|^2.
func (b *Body) KineticEnergy() float64 {
	if b.fixed {
		return 0
	}
	v := b.Velocity.Len()
	return 0.5 * b.Mass * v * v
}
