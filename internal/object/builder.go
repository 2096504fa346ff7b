package object

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/render"
)

// PhysicsObjectBuilder assembles a PhysicsObject from plain options. With a
// texture it wraps a Textured object, otherwise a Shape.
type PhysicsObjectBuilder struct {
	texture     render.Texture
	color       color.RGBA
	position    mgl64.Vec2
	size        mgl64.Vec2
	mass        float64
	fixed       bool
	restitution float64
	friction    float64
	rotation    float64
	velocity    mgl64.Vec2
}

func NewPhysicsObjectBuilder() *PhysicsObjectBuilder {
	return &PhysicsObjectBuilder{
		color:       render.White,
		size:        physics.DefaultSize,
		mass:        physics.DefaultMass,
		restitution: physics.DefaultRestitution,
		friction:    physics.DefaultFriction,
	}
}

func (b *PhysicsObjectBuilder) WithTexture(tex render.Texture) *PhysicsObjectBuilder {
	b.texture = tex
	return b
}

func (b *PhysicsObjectBuilder) WithColor(c color.RGBA) *PhysicsObjectBuilder {
	b.color = c
	return b
}

func (b *PhysicsObjectBuilder) AtPosition(p mgl64.Vec2) *PhysicsObjectBuilder {
	b.position = p
	return b
}

func (b *PhysicsObjectBuilder) WithSize(size mgl64.Vec2) *PhysicsObjectBuilder {
	b.size = size
	return b
}

func (b *PhysicsObjectBuilder) WithMass(mass float64) *PhysicsObjectBuilder {
	b.mass = mass
	return b
}

func (b *PhysicsObjectBuilder) Fixed() *PhysicsObjectBuilder {
	b.fixed = true
	return b
}

func (b *PhysicsObjectBuilder) WithRestitution(e float64) *PhysicsObjectBuilder {
	b.restitution = e
	return b
}

func (b *PhysicsObjectBuilder) WithFriction(f float64) *PhysicsObjectBuilder {
	b.friction = f
	return b
}

func (b *PhysicsObjectBuilder) WithRotation(r float64) *PhysicsObjectBuilder {
	b.rotation = r
	return b
}

func (b *PhysicsObjectBuilder) WithInitialVelocity(v mgl64.Vec2) *PhysicsObjectBuilder {
	b.velocity = v
	return b
}

// Build validates the body parameters. Restitution and friction are clamped
// rather than rejected.
func (b *PhysicsObjectBuilder) Build() (*PhysicsObject[GameObject], error) {
	var visual GameObject
	if b.texture != nil {
		visual = NewTextured(b.texture, b.position, b.size, b.rotation)
	} else {
		s := NewShape(b.position, b.size, b.color)
		s.SetRotation(b.rotation)
		visual = s
	}

	p, err := NewPhysicsObject(visual, b.position, b.size, b.mass, b.fixed)
	if err != nil {
		return nil, err
	}
	p.body.SetRestitution(b.restitution)
	p.body.SetFriction(b.friction)
	if !b.fixed {
		p.body.Velocity = b.velocity
	}
	return p, nil
}
