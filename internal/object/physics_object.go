package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/render"
)

// TiltPerSpeed is the visual tilt in degrees per px/s of horizontal speed.
const TiltPerSpeed = 0.01

// PhysicsObject gives any GameObject a physics body. The body is the source
// of truth for position; the wrapped object follows it.
type PhysicsObject[T GameObject] struct {
	object T
	body   *physics.Body
}

// NewPhysicsObject creates a body for obj and moves obj onto it.
func NewPhysicsObject[T GameObject](obj T, position, size mgl64.Vec2, mass float64, fixed bool) (*PhysicsObject[T], error) {
	body, err := physics.NewBody(position, size, mass, fixed)
	if err != nil {
		return nil, err
	}
	p := &PhysicsObject[T]{object: obj, body: body}
	p.SyncWithPhysics()
	return p, nil
}

func (p *PhysicsObject[T]) Object() T                  { return p.object }
func (p *PhysicsObject[T]) PhysicsBody() *physics.Body { return p.body }
func (p *PhysicsObject[T]) SyncWithPhysics()           { p.object.SetPosition(p.body.Position) }
func (p *PhysicsObject[T]) Draw(r render.Renderer)     { p.object.Draw(r) }
func (p *PhysicsObject[T]) Position() mgl64.Vec2       { return p.object.Position() }
func (p *PhysicsObject[T]) Rotation() float64          { return p.object.Rotation() }
func (p *PhysicsObject[T]) SetRotation(r float64)      { p.object.SetRotation(r) }
func (p *PhysicsObject[T]) Size() mgl64.Vec2           { return p.object.Size() }
func (p *PhysicsObject[T]) Velocity() mgl64.Vec2       { return p.body.Velocity }
func (p *PhysicsObject[T]) SetVelocity(v mgl64.Vec2)   { p.body.Velocity = v }
func (p *PhysicsObject[T]) ApplyForce(f mgl64.Vec2)    { p.body.ApplyForce(f) }
func (p *PhysicsObject[T]) ApplyImpulse(j mgl64.Vec2)  { p.body.ApplyImpulse(j) }
func (p *PhysicsObject[T]) Stop()                      { p.body.Stop() }
func (p *PhysicsObject[T]) Jump(force float64)         { p.body.Jump(force) }
func (p *PhysicsObject[T]) SetRestitution(e float64)   { p.body.SetRestitution(e) }
func (p *PhysicsObject[T]) SetFriction(f float64)      { p.body.SetFriction(f) }
func (p *PhysicsObject[T]) Fixed() bool                { return p.body.Fixed() }
func (p *PhysicsObject[T]) SetFixed(fixed bool)        { p.body.SetFixed(fixed) }

// SetPosition teleports both the body and the visual.
func (p *PhysicsObject[T]) SetPosition(pos mgl64.Vec2) {
	p.body.Position = pos
	p.object.SetPosition(pos)
}

// Update runs the wrapped object's own update, then pins it to the body and
// tilts it in the direction of travel.
func (p *PhysicsObject[T]) Update(dt float64) {
	p.object.Update(dt)
	p.object.SetPosition(p.body.Position)
	p.object.SetRotation(mgl64.DegToRad(p.body.Velocity.X() * TiltPerSpeed))
}
