package particle

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

// Builder collects system options; Build validates them in one place.
type Builder struct {
	position mgl64.Vec2
	rotation float64
	scale    float64
	area     mgl64.Vec2
	texture  render.Texture
	settings Settings
	rng      *rand.Rand
}

func NewBuilder(position mgl64.Vec2) *Builder {
	return &Builder{
		position: position,
		scale:    1,
		area:     mgl64.Vec2{100, 100},
		settings: DefaultSettings(),
	}
}

func (b *Builder) Texture(t render.Texture) *Builder {
	b.texture = t
	return b
}

func (b *Builder) Settings(s Settings) *Builder {
	b.settings = s
	return b
}

func (b *Builder) EmissionRate(rate float64) *Builder {
	b.settings.EmissionRate = rate
	return b
}

func (b *Builder) Lifetime(min, max time.Duration) *Builder {
	b.settings.Lifetime = DurationRange{Min: min, Max: max}
	return b
}

func (b *Builder) InitialSpeed(min, max float64) *Builder {
	b.settings.Speed = Range{Min: min, Max: max}
	return b
}

func (b *Builder) AngleRange(min, max float64) *Builder {
	b.settings.Angle = Range{Min: min, Max: max}
	return b
}

func (b *Builder) ScaleRange(min, max float64) *Builder {
	b.settings.Scale = Range{Min: min, Max: max}
	return b
}

func (b *Builder) RotationSpeed(min, max float64) *Builder {
	b.settings.RotationSpeed = Range{Min: min, Max: max}
	return b
}

func (b *Builder) Gravity(g mgl64.Vec2) *Builder {
	b.settings.Gravity = g
	return b
}

func (b *Builder) Color(c color.RGBA) *Builder {
	b.settings.Color = c
	return b
}

func (b *Builder) MaxParticles(n int) *Builder {
	b.settings.MaxParticles = n
	return b
}

func (b *Builder) BatchSize(n int) *Builder {
	b.settings.BatchSize = n
	return b
}

// Scale sets the global multiplier applied to newly emitted particles.
func (b *Builder) Scale(s float64) *Builder {
	b.scale = s
	return b
}

func (b *Builder) Rotation(r float64) *Builder {
	b.rotation = r
	return b
}

func (b *Builder) EmissionArea(area mgl64.Vec2) *Builder {
	b.area = area
	return b
}

// Seed makes emission reproducible.
func (b *Builder) Seed(seed int64) *Builder {
	b.rng = rand.New(rand.NewSource(seed))
	return b
}

func (b *Builder) Rand(r *rand.Rand) *Builder {
	b.rng = r
	return b
}

func (b *Builder) Build() (*System, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	if b.scale < 0 {
		return nil, fmt.Errorf("%w: scale must be non-negative, got %g", ErrInvalidSettings, b.scale)
	}

	rng := b.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &System{
		position:  b.position,
		rotation:  b.rotation,
		scale:     b.scale,
		area:      b.area,
		texture:   b.texture,
		settings:  b.settings,
		particles: make([]Particle, 0, b.settings.MaxParticles),
		rng:       rng,
	}, nil
}
