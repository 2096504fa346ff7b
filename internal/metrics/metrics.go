// Package metrics observes a physics world tick by tick.
package metrics

import (
	"sort"

	"github.com/san-kum/deskstead/internal/physics"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// BodyState is a copy of one body taken after a tick.
type BodyState struct {
	ID   physics.ID
	Body physics.Body
}

// Sample is the world as seen right after a successful Step.
type Sample struct {
	Tick   uint64
	Time   float64
	Bodies []BodyState
	Stats  physics.TickStats
}

// Snapshot copies the movable bodies of w in ID order.
func Snapshot[T physics.Entity](w *physics.World[T], stats physics.TickStats) Sample {
	s := Sample{
		Tick:  stats.Tick,
		Time:  w.Elapsed(),
		Stats: stats,
	}
	w.Each(func(id physics.ID, e T) bool {
		b := e.PhysicsBody()
		if !b.Fixed() {
			s.Bodies = append(s.Bodies, BodyState{ID: id, Body: *b})
		}
		return true
	})
	return s
}

// Body finds a body in the sample.
func (s Sample) Body(id physics.ID) (physics.Body, bool) {
	i := sort.Search(len(s.Bodies), func(i int) bool { return s.Bodies[i].ID >= id })
	if i < len(s.Bodies) && s.Bodies[i].ID == id {
		return s.Bodies[i].Body, true
	}
	return physics.Body{}, false
}

// Set runs several metrics side by side.
type Set []Metric

func (ms Set) Observe(s Sample) {
	for _, m := range ms {
		m.Observe(s)
	}
}

func (ms Set) Reset() {
	for _, m := range ms {
		m.Reset()
	}
}

// Values returns every metric value keyed by name.
func (ms Set) Values() map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
