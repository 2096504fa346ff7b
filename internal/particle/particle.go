package particle

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/render"
)

// BaseRadius is the circle radius drawn for a particle of scale 1 when no
// texture is available.
const BaseRadius = 10.0

// Particle is a single simulated point. Times are offsets on the owning
// system's clock.
type Particle struct {
	Position      mgl64.Vec2
	Velocity      mgl64.Vec2
	Acceleration  mgl64.Vec2
	Rotation      float64
	RotationSpeed float64
	Scale         float64
	ScaleSpeed    float64
	Color         color.RGBA
	Alpha         float64
	AlphaDecay    float64

	birth    time.Duration
	lifetime time.Duration
	alive    bool
}

// New creates a particle born at the given clock instant with full alpha.
func New(origin, velocity, acceleration mgl64.Vec2, rotation, rotationSpeed, scale, scaleSpeed float64, c color.RGBA, alphaDecay float64, lifetime, birth time.Duration) Particle {
	return Particle{
		Position:      origin,
		Velocity:      velocity,
		Acceleration:  acceleration,
		Rotation:      rotation,
		RotationSpeed: rotationSpeed,
		Scale:         scale,
		ScaleSpeed:    scaleSpeed,
		Color:         c,
		Alpha:         1,
		AlphaDecay:    alphaDecay,
		birth:         birth,
		lifetime:      lifetime,
		alive:         lifetime > 0,
	}
}

// Update advances the particle by dt seconds and reports whether it is still
// alive at now. A dead particle is left untouched.
func (p *Particle) Update(dt float64, now time.Duration) bool {
	if !p.alive {
		return false
	}

	p.Velocity = p.Velocity.Add(p.Acceleration.Mul(dt))
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Rotation += p.RotationSpeed * dt
	p.Scale += p.ScaleSpeed * dt
	if p.Scale < 0 {
		p.Scale = 0
	}
	p.Alpha = geom.Clamp(p.Alpha+p.AlphaDecay*dt, 0, 1)

	p.alive = now-p.birth < p.lifetime && p.Alpha > 0
	return p.alive
}

func (p *Particle) Alive() bool             { return p.alive }
func (p *Particle) Birth() time.Duration    { return p.birth }
func (p *Particle) Lifetime() time.Duration { return p.lifetime }

// Draw renders the particle as a tinted texture quad, or a filled circle when
// tex is nil.
func (p *Particle) Draw(r render.Renderer, tex render.Texture) {
	tint := render.WithAlpha(p.Color, p.Alpha)
	if tex == nil {
		r.DrawCircle(p.Position, BaseRadius*p.Scale, tint)
		return
	}
	size := mgl64.Vec2{float64(tex.Width()) * p.Scale, float64(tex.Height()) * p.Scale}
	r.DrawTexture(tex, render.FullRegion(tex), p.Position, size, p.Rotation, tint)
}
