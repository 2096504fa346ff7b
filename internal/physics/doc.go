// Package physics simulates rigid axis-aligned boxes under gravity.
//
// A [World] owns entities that expose a [Body] through the [Component]
// interface. Each call to [World.Step] applies gravity, integrates every
// movable body with semi-implicit Euler, resolves landings on fixed bodies
// and finally lets each entity copy the new state into its visual.
//
// Only top-face landings are resolved: a falling body that sinks into the
// top of a fixed body is placed on it and bounces with the product of both
// restitutions. Side and bottom overlaps are counted in [TickStats] but left
// alone.
//
//	w := physics.NewWorld[physics.Entity]()
//	id := w.Add(crate)
//	for {
//	    stats, err := w.Step(1.0 / 60)
//	    if err != nil {
//	        return err
//	    }
//	    _ = stats
//	}
//
// A [Dragger] lets a pointer pick up, carry and throw bodies.
package physics
