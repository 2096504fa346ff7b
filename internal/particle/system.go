package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/render"
)

// System emits, updates and draws a bounded set of particles. It is not
// safe for concurrent use.
type System struct {
	position  mgl64.Vec2
	rotation  float64
	scale     float64
	area      mgl64.Vec2
	texture   render.Texture
	settings  Settings
	particles []Particle
	rng       *rand.Rand

	clock   time.Duration
	budget  float64
	emitted uint64
	dropped uint64
}

func (s *System) Position() mgl64.Vec2        { return s.position }
func (s *System) SetPosition(p mgl64.Vec2)    { s.position = p }
func (s *System) Rotation() float64           { return s.rotation }
func (s *System) SetRotation(r float64)       { s.rotation = r }
func (s *System) Scale() float64              { return s.scale }
func (s *System) SetScale(sc float64)         { s.scale = math.Max(sc, 0) }
func (s *System) Size() mgl64.Vec2            { return s.area }
func (s *System) Settings() Settings          { return s.settings }
func (s *System) Texture() render.Texture     { return s.texture }
func (s *System) SetTexture(t render.Texture) { s.texture = t }
func (s *System) Len() int                    { return len(s.particles) }
func (s *System) Clock() time.Duration        { return s.clock }
func (s *System) Emitted() uint64             { return s.emitted }
func (s *System) Dropped() uint64             { return s.dropped }
func (s *System) Particles() []Particle       { return s.particles }
func (s *System) Budget() float64             { return s.budget }

// Clear removes every live particle and resets the emission budget.
func (s *System) Clear() {
	s.particles = s.particles[:0]
	s.budget = 0
}

// Update advances the system by dt seconds: it emits the particles owed
// since the last call, then steps every particle and drops the dead ones.
// Surviving particles may be reordered.
func (s *System) Update(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	s.clock += time.Duration(dt * float64(time.Second))

	if s.settings.EmissionRate > 0 {
		s.budget += s.settings.EmissionRate * dt
		owed := math.Floor(s.budget)
		if math.IsInf(owed, 1) {
			s.budget = 0
		} else {
			s.budget -= owed
		}

		free := float64(max(s.settings.MaxParticles-len(s.particles), 0))
		n := math.Min(owed, free)
		for range int(n) {
			s.emit()
		}
		s.drop(owed - n)
	}

	i := 0
	for i < len(s.particles) {
		if s.particles[i].Update(dt, s.clock) {
			i++
			continue
		}
		last := len(s.particles) - 1
		s.particles[i] = s.particles[last]
		s.particles = s.particles[:last]
	}
}

// drop counts n owed particles that found no free slot, saturating at the
// counter's maximum.
func (s *System) drop(n float64) {
	if n <= 0 {
		return
	}
	room := math.MaxUint64 - s.dropped
	if n >= float64(room) {
		s.dropped = math.MaxUint64
		return
	}
	s.dropped += uint64(n)
}

func (s *System) emit() {
	st := &s.settings
	angle := st.Angle.Random(s.rng) + s.rotation
	speed := st.Speed.Random(s.rng)

	p := New(
		s.position,
		geom.FromAngle(angle, speed),
		st.Gravity,
		st.Rotation.Random(s.rng)+s.rotation,
		st.RotationSpeed.Random(s.rng),
		st.Scale.Random(s.rng)*s.scale,
		st.ScaleSpeed,
		st.Color,
		st.AlphaDecay,
		st.Lifetime.Random(s.rng),
		s.clock,
	)
	s.particles = append(s.particles, p)
	s.emitted++
}

// Draw renders every particle in batches of the configured size. Draw order
// carries no meaning.
func (s *System) Draw(r render.Renderer) {
	batch := s.settings.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	b, batching := r.(render.Batcher)

	for start := 0; start < len(s.particles); start += batch {
		end := min(start+batch, len(s.particles))
		if batching {
			b.BeginBatch()
		}
		for i := start; i < end; i++ {
			s.particles[i].Draw(r, s.texture)
		}
		if batching {
			b.EndBatch()
		}
	}
}
