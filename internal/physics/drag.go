package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
)

const (
	// DefaultDragStiffness converts the distance to the pointer into velocity.
	DefaultDragStiffness = 15.0

	// DefaultThrowScale weights the pointer delta in the release impulse.
	DefaultThrowScale = 0.5
)

// Dragger lets a pointer pick up, carry and throw movable bodies. The held
// body is steered by setting its velocity, so gravity and collisions still
// apply while it is carried.
type Dragger[T Entity] struct {
	Stiffness  float64
	ThrowScale float64

	held     ID
	holding  bool
	offset   mgl64.Vec2
	lastPos  mgl64.Vec2
	lastMove mgl64.Vec2
	pointer  mgl64.Vec2
	delta    mgl64.Vec2
	seen     bool
}

func NewDragger[T Entity]() *Dragger[T] {
	return &Dragger[T]{
		Stiffness:  DefaultDragStiffness,
		ThrowScale: DefaultThrowScale,
	}
}

// Held returns the ID being carried, if any.
func (d *Dragger[T]) Held() (ID, bool) {
	return d.held, d.holding
}

// Update is called once per tick with the polled pointer state.
func (d *Dragger[T]) Update(w *World[T], pointer mgl64.Vec2, down bool, dt float64) {
	if d.seen {
		d.delta = pointer.Sub(d.pointer)
	}
	d.pointer = pointer
	d.seen = true

	if !down {
		if d.holding {
			d.release(w, dt)
		}
		return
	}

	if !d.holding {
		d.grab(w, pointer)
		return
	}

	e, ok := w.Get(d.held)
	if !ok {
		d.holding = false
		return
	}
	b := e.PhysicsBody()
	d.lastMove = b.Position.Sub(d.lastPos)
	d.lastPos = b.Position

	target := pointer.Sub(d.offset)
	b.Velocity = target.Sub(b.Position).Mul(d.Stiffness)
}

func (d *Dragger[T]) grab(w *World[T], pointer mgl64.Vec2) {
	id, ok := w.At(pointer)
	if !ok {
		return
	}
	e, _ := w.Get(id)
	b := e.PhysicsBody()

	d.held = id
	d.holding = true
	d.offset = pointer.Sub(b.Position)
	d.lastPos = b.Position
	d.lastMove = mgl64.Vec2{}
}

// release throws the body with the momentum of its last movement plus a
// share of the pointer flick.
func (d *Dragger[T]) release(w *World[T], dt float64) {
	d.holding = false
	e, ok := w.Get(d.held)
	if !ok || !(dt > 0) {
		return
	}
	b := e.PhysicsBody()
	v := d.lastMove.Add(d.delta.Mul(d.ThrowScale)).Mul(1 / dt)
	v = geom.ClampLength(b.Velocity.Add(v), MaxSpeed).Sub(b.Velocity)
	b.ApplyImpulse(v.Mul(b.Mass))
}
