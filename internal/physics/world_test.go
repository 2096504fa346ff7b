package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/deskstead/internal/render"
)

const tol = 1e-9

var _ = Describe("World", func() {
	var w *World[*box]

	BeforeEach(func() {
		w = NewWorld[*box]()
	})

	Describe("Add and Remove", func() {
		It("hands out increasing ids and never reuses them", func() {
			a := w.Add(newBox(GinkgoT(), mgl64.Vec2{}, DefaultSize, 1, false))
			b := w.Add(newBox(GinkgoT(), mgl64.Vec2{}, DefaultSize, 1, false))
			Expect(b).To(BeNumerically(">", a))

			Expect(w.Remove(b)).To(BeTrue())
			Expect(w.Remove(b)).To(BeFalse())

			c := w.Add(newBox(GinkgoT(), mgl64.Vec2{}, DefaultSize, 1, false))
			Expect(c).To(BeNumerically(">", b))
			Expect(w.IDs()).To(Equal([]ID{a, c}))
		})

		It("keeps every id valid until removed", func() {
			ids := make([]ID, 5)
			for i := range ids {
				ids[i] = w.Add(newBox(GinkgoT(), mgl64.Vec2{float64(i) * 100, 0}, DefaultSize, 1, false))
			}
			for i := 0; i < 10; i++ {
				_, err := w.Step(1.0 / 60)
				Expect(err).NotTo(HaveOccurred())
			}
			for _, id := range ids {
				_, ok := w.Get(id)
				Expect(ok).To(BeTrue())
			}
		})
	})

	Describe("Step", func() {
		It("rejects invalid timesteps without mutating", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			w.Add(e)

			for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				_, err := w.Step(dt)
				Expect(errors.Is(err, ErrInvalidTimestep)).To(BeTrue())
			}
			Expect(e.body.Position).To(Equal(mgl64.Vec2{0, 0}))
			Expect(w.Ticks()).To(BeZero())
		})

		It("accumulates gravity linearly in free fall", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 3, false)
			w.Add(e)

			dt := 1.0 / 60
			n := 20
			for i := 0; i < n; i++ {
				_, err := w.Step(dt)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(e.body.Velocity.Y()).To(BeNumerically("~", float64(n)*DefaultGravity*dt, tol))
			Expect(e.body.Velocity.X()).To(BeZero())
		})

		It("keeps free fall linear past the body speed cap", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			w.Add(e)

			dt := 1.0 / 60
			n := 180
			for i := 0; i < n; i++ {
				_, err := w.Step(dt)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(float64(n) * dt * DefaultGravity).To(BeNumerically(">", MaxSpeed))
			Expect(e.body.Velocity.Y()).To(BeNumerically("~", float64(n)*DefaultGravity*dt, 1e-6))
		})

		It("does not trade horizontal speed for gravity", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			e.body.Velocity = mgl64.Vec2{MaxSpeed, 0}
			w.Add(e)

			for i := 0; i < 60; i++ {
				_, err := w.Step(1.0 / 60)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(e.body.Velocity.X()).To(BeNumerically("~", MaxSpeed, 1e-9))
			Expect(e.body.Velocity.Y()).To(BeNumerically("~", DefaultGravity, 1e-6))
		})

		It("caps speed when a limit is set", func() {
			w = NewWorld[*box](WithSpeedLimit(MaxSpeed))
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			w.Add(e)

			for i := 0; i < 180; i++ {
				_, err := w.Step(1.0 / 60)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(e.body.Velocity.Len()).To(BeNumerically("~", MaxSpeed, 1e-9))
		})

		It("syncs every entity after the tick", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			floor := newBox(GinkgoT(), mgl64.Vec2{0, 500}, mgl64.Vec2{100, 10}, 0, true)
			w.Add(e)
			w.Add(floor)

			_, err := w.Step(0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.pos).To(Equal(e.body.Position))
			Expect(e.syncs).To(Equal(1))
			Expect(floor.syncs).To(Equal(1))
		})

		It("never moves fixed bodies", func() {
			floor := newBox(GinkgoT(), mgl64.Vec2{400, 500}, mgl64.Vec2{800, 50}, 0, true)
			w.Add(floor)
			w.Add(newBox(GinkgoT(), mgl64.Vec2{400, 440}, DefaultSize, 1, false))

			for i := 0; i < 120; i++ {
				floor.body.ApplyForce(mgl64.Vec2{0, -1e6})
				_, err := w.Step(1.0 / 60)
				Expect(err).NotTo(HaveOccurred())
				Expect(floor.body.Position).To(Equal(mgl64.Vec2{400, 500}))
				Expect(floor.body.Velocity).To(Equal(mgl64.Vec2{}))
				Expect(floor.body.Acceleration).To(Equal(mgl64.Vec2{}))
			}
		})

		It("restores every body when a state diverges", func() {
			good := newBox(GinkgoT(), mgl64.Vec2{0, 0}, DefaultSize, 1, false)
			bad := newBox(GinkgoT(), mgl64.Vec2{100, 0}, DefaultSize, 1, false)
			w.Add(good)
			badID := w.Add(bad)
			bad.body.Position = mgl64.Vec2{math.Inf(1), 0}

			_, err := w.Step(0.1)
			var tickErr *TickError
			Expect(errors.As(err, &tickErr)).To(BeTrue())
			Expect(tickErr.ID).To(Equal(badID))
			Expect(errors.Is(err, ErrNonFinite)).To(BeTrue())
			Expect(good.body.Position).To(Equal(mgl64.Vec2{0, 0}))
			Expect(good.body.Velocity).To(Equal(mgl64.Vec2{}))
			Expect(w.Ticks()).To(BeZero())
		})
	})

	Describe("floor collisions", func() {
		var floor *box

		BeforeEach(func() {
			floor = newBox(GinkgoT(), mgl64.Vec2{400, 500}, mgl64.Vec2{800, 50}, 0, true)
			floor.body.SetRestitution(0.1)
			w.Add(floor)
		})

		It("lands a falling body on the floor top", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{400, 448}, DefaultSize, 100, false)
			e.body.SetRestitution(0.7)
			e.body.Velocity = mgl64.Vec2{100, 300}
			id := w.Add(e)

			stats, err := w.Step(0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Contacts).To(HaveLen(1))

			c := stats.Contacts[0]
			Expect(c.Body).To(Equal(id))
			Expect(c.Incoming.Y()).To(BeNumerically("~", 310, tol))

			floorTop := 500.0 - 25
			Expect(e.body.Position.Y()).To(Equal(floorTop - 25))
			Expect(e.body.Velocity.Y()).To(BeNumerically("~", -310*0.1*0.7, tol))
			Expect(e.body.Velocity.X()).To(BeNumerically("~", 100*DefaultSurfaceDamping, tol))
		})

		It("ignores side penetration", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{-20, 500}, mgl64.Vec2{50, 20}, 1, false)
			e.body.Velocity = mgl64.Vec2{50, 0}
			w.Add(e)

			stats, err := w.Step(0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Contacts).To(BeEmpty())
			Expect(stats.Unresolved).To(Equal(1))
		})

		It("ignores bodies moving up through the top face", func() {
			e := newBox(GinkgoT(), mgl64.Vec2{400, 460}, DefaultSize, 1, false)
			e.body.Velocity = mgl64.Vec2{0, -500}
			w.Add(e)

			stats, err := w.Step(0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Contacts).To(BeEmpty())
			Expect(stats.Unresolved).To(Equal(1))
			Expect(e.body.Velocity.Y()).To(BeNumerically("<", 0))
		})

		It("resolves several landings in the same tick", func() {
			a := newBox(GinkgoT(), mgl64.Vec2{100, 449}, DefaultSize, 1, false)
			b := newBox(GinkgoT(), mgl64.Vec2{600, 449}, DefaultSize, 5, false)
			a.body.Velocity = mgl64.Vec2{0, 200}
			b.body.Velocity = mgl64.Vec2{0, 200}
			w.Add(a)
			w.Add(b)

			stats, err := w.Step(0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Contacts).To(HaveLen(2))
			Expect(a.body.Position.Y()).To(Equal(450.0))
			Expect(b.body.Position.Y()).To(Equal(450.0))
		})

		It("bounces once then settles with decreasing energy", func() {
			width, height := 800.0, 600.0
			w = NewWorld[*box]()
			floor = newBox(GinkgoT(), mgl64.Vec2{width / 2, height - 100}, mgl64.Vec2{width, 50}, 0, true)
			floor.body.SetRestitution(0.1)
			w.Add(floor)

			a := newBox(GinkgoT(), mgl64.Vec2{100, 50}, mgl64.Vec2{50, 50}, 100, false)
			a.body.SetRestitution(0.7)
			w.Add(a)

			dt := 1.0 / 60
			floorTop := height - 100 - 25

			var first TickStats
			for i := 0; i < 600; i++ {
				stats, err := w.Step(dt)
				Expect(err).NotTo(HaveOccurred())
				if a.body.Velocity.Y() < 0 {
					first = stats
					break
				}
			}
			Expect(first.Contacts).To(HaveLen(1))
			incoming := first.Contacts[0].Incoming.Y()
			Expect(a.body.Position.Y()).To(Equal(floorTop - 25))
			Expect(a.body.Velocity.Y()).To(BeNumerically("~", -incoming*0.1*0.7, tol))

			speeds := []float64{incoming}
			for i := 0; i < 600 && len(speeds) < 3; i++ {
				stats, err := w.Step(dt)
				Expect(err).NotTo(HaveOccurred())
				for _, c := range stats.Contacts {
					speeds = append(speeds, c.Incoming.Y())
				}
			}
			Expect(speeds).To(HaveLen(3))
			Expect(speeds[1]).To(BeNumerically("<", speeds[0]))
			Expect(speeds[2]).To(BeNumerically("<", speeds[1]))
		})
	})

	Describe("Draw", func() {
		It("skips entities that cannot draw", func() {
			w.Add(newBox(GinkgoT(), mgl64.Vec2{}, DefaultSize, 1, false))
			r := render.NewRecorder()
			w.Draw(r)
			Expect(r.Calls).To(BeEmpty())
		})
	})
})

var _ = Describe("Dragger", func() {
	var (
		w    *World[*box]
		d    *Dragger[*box]
		a, b *box
		aID  ID
	)

	BeforeEach(func() {
		w = NewWorld[*box](WithGravity(0))
		d = NewDragger[*box]()
		a = newBox(GinkgoT(), mgl64.Vec2{100, 100}, DefaultSize, 2, false)
		b = newBox(GinkgoT(), mgl64.Vec2{300, 100}, DefaultSize, 2, false)
		aID = w.Add(a)
		w.Add(b)
	})

	It("grabs exactly one body under the pointer", func() {
		d.Update(w, mgl64.Vec2{110, 90}, true, 0.1)
		id, ok := d.Held()
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(aID))
	})

	It("grabs nothing when the pointer misses", func() {
		d.Update(w, mgl64.Vec2{200, 100}, true, 0.1)
		_, ok := d.Held()
		Expect(ok).To(BeFalse())
	})

	It("keeps holding the same body while the pointer moves", func() {
		d.Update(w, mgl64.Vec2{100, 100}, true, 0.1)
		// sweep across the other body
		for x := 100.0; x <= 320; x += 20 {
			d.Update(w, mgl64.Vec2{x, 100}, true, 0.1)
			id, ok := d.Held()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(aID))
		}
	})

	It("steers the held body toward the pointer", func() {
		d.Update(w, mgl64.Vec2{110, 100}, true, 0.1)
		d.Update(w, mgl64.Vec2{120, 100}, true, 0.1)

		// offset is 10, so the target center is x=110
		Expect(a.body.Velocity.X()).To(BeNumerically("~", 10*DefaultDragStiffness, tol))
		Expect(a.body.Velocity.Y()).To(BeNumerically("~", 0, tol))
	})

	It("throws the body on release", func() {
		d.Update(w, mgl64.Vec2{100, 100}, true, 0.1)
		d.Update(w, mgl64.Vec2{110, 100}, true, 0.1)
		_, err := w.Step(0.1)
		Expect(err).NotTo(HaveOccurred())
		d.Update(w, mgl64.Vec2{120, 100}, true, 0.1)

		before := a.body.Velocity
		d.Update(w, mgl64.Vec2{140, 100}, false, 0.1)
		_, ok := d.Held()
		Expect(ok).To(BeFalse())
		Expect(a.body.Velocity.X()).To(BeNumerically(">", before.X()))
	})

	It("caps the throw speed", func() {
		d.Update(w, mgl64.Vec2{100, 100}, true, 0.01)
		d.Update(w, mgl64.Vec2{1100, 100}, false, 0.01)
		_, ok := d.Held()
		Expect(ok).To(BeFalse())
		Expect(a.body.Velocity.Len()).To(BeNumerically("~", MaxSpeed, 1e-6))
	})

	It("ignores fixed bodies", func() {
		floor := newBox(GinkgoT(), mgl64.Vec2{500, 500}, mgl64.Vec2{100, 100}, 0, true)
		w.Add(floor)
		d.Update(w, mgl64.Vec2{500, 500}, true, 0.1)
		_, ok := d.Held()
		Expect(ok).To(BeFalse())
	})
})
