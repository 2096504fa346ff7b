package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/render"
)

const (
	// DefaultGravity is the downward world acceleration in px/s^2.
	DefaultGravity = 1000.0

	// DefaultSurfaceDamping scales horizontal velocity on every floor contact.
	DefaultSurfaceDamping = 0.95
)

// ID identifies an entity within a World. IDs are never reused.
type ID uint64

// Settings tunes a World.
type Settings struct {
	Gravity        float64
	AirDrag        float64
	SurfaceDamping float64
	// SpeedLimit caps body speed during a tick. Zero means unbounded, so
	// free fall stays linear in time.
	SpeedLimit float64
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:        DefaultGravity,
		SurfaceDamping: DefaultSurfaceDamping,
	}
}

type Option func(*Settings)

func WithGravity(g float64) Option {
	return func(s *Settings) { s.Gravity = g }
}

func WithAirDrag(k float64) Option {
	return func(s *Settings) { s.AirDrag = k }
}

func WithSurfaceDamping(d float64) Option {
	return func(s *Settings) { s.SurfaceDamping = d }
}

func WithSpeedLimit(v float64) Option {
	return func(s *Settings) { s.SpeedLimit = v }
}

// Contact is a resolved landing of a movable body on a fixed one.
type Contact struct {
	Body        ID
	Surface     ID
	RestY       float64
	Restitution float64
	Incoming    mgl64.Vec2
}

// TickStats describes what happened during one Step.
type TickStats struct {
	Tick     uint64
	Contacts []Contact
	// Unresolved counts overlaps that were detected but not pushed apart:
	// side and bottom penetrations, and top penetrations while moving up.
	Unresolved int
}

// World owns a set of physics entities and steps them together.
type World[T Entity] struct {
	settings Settings
	objects  map[ID]T
	nextID   ID
	ticks    uint64
	elapsed  float64
}

func NewWorld[T Entity](opts ...Option) *World[T] {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &World[T]{
		settings: s,
		objects:  make(map[ID]T),
	}
}

func (w *World[T]) Settings() Settings { return w.settings }
func (w *World[T]) Len() int           { return len(w.objects) }
func (w *World[T]) Ticks() uint64      { return w.ticks }
func (w *World[T]) Elapsed() float64   { return w.elapsed }

// Add stores e under a fresh ID.
func (w *World[T]) Add(e T) ID {
	id := w.nextID
	w.objects[id] = e
	w.nextID++
	return id
}

func (w *World[T]) Get(id ID) (T, bool) {
	e, ok := w.objects[id]
	return e, ok
}

// Remove deletes the entity. Its ID is not handed out again.
func (w *World[T]) Remove(id ID) bool {
	if _, ok := w.objects[id]; !ok {
		return false
	}
	delete(w.objects, id)
	return true
}

// IDs returns every live ID in ascending order.
func (w *World[T]) IDs() []ID {
	ids := make([]ID, 0, len(w.objects))
	for id := range w.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Each visits entities in ID order. Returning false stops the walk.
func (w *World[T]) Each(fn func(id ID, e T) bool) {
	for _, id := range w.IDs() {
		if !fn(id, w.objects[id]) {
			return
		}
	}
}

// Step advances the world by dt seconds. On error nothing is changed.
func (w *World[T]) Step(dt float64) (TickStats, error) {
	stats := TickStats{Tick: w.ticks}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return stats, fmt.Errorf("%w: got %v", ErrInvalidTimestep, dt)
	}

	ids := w.IDs()
	snapshot := make([]Body, len(ids))
	for i, id := range ids {
		snapshot[i] = *w.objects[id].PhysicsBody()
	}

	gravity := mgl64.Vec2{0, w.settings.Gravity}
	for _, id := range ids {
		b := w.objects[id].PhysicsBody()
		if b.fixed {
			b.integrate(dt, 0)
			continue
		}
		ApplyGravity(b, gravity)
		if w.settings.AirDrag > 0 {
			ApplyDrag(b, w.settings.AirDrag)
		}
		b.integrate(dt, w.settings.SpeedLimit)
		if !b.Finite() {
			w.restore(ids, snapshot)
			return stats, &TickError{Tick: w.ticks, ID: id, Wrapped: ErrNonFinite}
		}
	}

	stats.Contacts = w.detect(ids, &stats)
	for _, c := range stats.Contacts {
		b := w.objects[c.Body].PhysicsBody()
		b.Position[1] = c.RestY
		b.Velocity[1] = -c.Incoming.Y() * c.Restitution
		b.Velocity[0] *= w.settings.SurfaceDamping
	}

	for _, id := range ids {
		w.objects[id].SyncWithPhysics()
	}

	w.ticks++
	w.elapsed += dt
	return stats, nil
}

// detect tests every fixed body against every movable one. Only landings on
// a top face while falling become contacts; resolution happens afterwards so
// the result does not depend on iteration order.
func (w *World[T]) detect(ids []ID, stats *TickStats) []Contact {
	var contacts []Contact
	for _, sid := range ids {
		s := w.objects[sid].PhysicsBody()
		if !s.fixed {
			continue
		}
		sb := s.Bounds()

		for _, did := range ids {
			if did == sid {
				continue
			}
			d := w.objects[did].PhysicsBody()
			if d.fixed {
				continue
			}
			db := d.Bounds()
			if !db.Overlaps(sb) {
				continue
			}

			pen := geom.PenetrationInto(db, sb)
			if pen.Min() == pen.Top && d.Velocity.Y() > 0 {
				contacts = append(contacts, Contact{
					Body:        did,
					Surface:     sid,
					RestY:       sb.Min.Y() - d.Size.Y()/2,
					Restitution: s.Restitution * d.Restitution,
					Incoming:    d.Velocity,
				})
				continue
			}
			stats.Unresolved++
		}
	}
	return contacts
}

func (w *World[T]) restore(ids []ID, snapshot []Body) {
	for i, id := range ids {
		*w.objects[id].PhysicsBody() = snapshot[i]
	}
}

// Drawable is implemented by entities that can render themselves.
type Drawable interface {
	Draw(r render.Renderer)
}

// Draw renders every drawable entity in ID order.
func (w *World[T]) Draw(r render.Renderer) {
	w.Each(func(_ ID, e T) bool {
		if d, ok := any(e).(Drawable); ok {
			d.Draw(r)
		}
		return true
	})
}

// At returns the first movable entity whose box contains p.
func (w *World[T]) At(p mgl64.Vec2) (ID, bool) {
	for _, id := range w.IDs() {
		b := w.objects[id].PhysicsBody()
		if !b.fixed && b.Bounds().Contains(p) {
			return id, true
		}
	}
	return 0, false
}
