package physics

import "github.com/go-gl/mathgl/mgl64"

// Component is implemented by anything that owns a Body.
type Component interface {
	PhysicsBody() *Body
	// SyncWithPhysics copies the body position back into the owner's own
	// transform after a world tick.
	SyncWithPhysics()
}

// Positionable is the transform side of an entity.
type Positionable interface {
	Position() mgl64.Vec2
	SetPosition(p mgl64.Vec2)
	Rotation() float64
	SetRotation(r float64)
	Size() mgl64.Vec2
}

// Entity is what a World stores.
type Entity interface {
	Component
	Positionable
}
