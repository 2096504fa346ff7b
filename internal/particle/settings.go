package particle

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMaxParticles = 1000
	DefaultBatchSize    = 1000
)

// Range is a closed interval sampled uniformly. Min == Max yields a constant.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Random(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("%w: %s is NaN", ErrInvalidSettings, name)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%w: %s [%g, %g]: %w", ErrInvalidSettings, name, r.Min, r.Max, ErrInvertedRange)
	}
	return nil
}

// DurationRange is a closed interval of durations.
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

func (r DurationRange) Random(rng *rand.Rand) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(rng.Int63n(int64(r.Max-r.Min)+1))
}

// Settings configures emission and per-particle behaviour.
type Settings struct {
	// EmissionRate is in particles per second.
	EmissionRate float64       `yaml:"emission_rate"`
	Lifetime     DurationRange `yaml:"lifetime"`
	// Speed is in px/s; Angle, Rotation and RotationSpeed are in radians.
	Speed         Range      `yaml:"speed"`
	Angle         Range      `yaml:"angle"`
	Scale         Range      `yaml:"scale"`
	Rotation      Range      `yaml:"rotation"`
	RotationSpeed Range      `yaml:"rotation_speed"`
	ScaleSpeed    float64    `yaml:"scale_speed"`
	AlphaDecay    float64    `yaml:"alpha_decay"`
	Gravity       mgl64.Vec2 `yaml:"gravity"`
	Color         color.RGBA `yaml:"-"`
	MaxParticles  int        `yaml:"max_particles"`
	BatchSize     int        `yaml:"batch_size"`
}

func DefaultSettings() Settings {
	return Settings{
		EmissionRate:  10,
		Lifetime:      DurationRange{Min: time.Second, Max: 2 * time.Second},
		Speed:         Range{Min: 50, Max: 100},
		Angle:         Range{Min: 0, Max: 2 * math.Pi},
		Scale:         Range{Min: 0.5, Max: 1.5},
		RotationSpeed: Range{Min: -1, Max: 1},
		ScaleSpeed:    -0.5,
		AlphaDecay:    -0.5,
		Gravity:       mgl64.Vec2{0, 98.1},
		Color:         color.RGBA{R: 255, G: 255, B: 255, A: 255},
		MaxParticles:  DefaultMaxParticles,
		BatchSize:     DefaultBatchSize,
	}
}

// Validate checks the settings as a whole. A non-positive emission rate is
// allowed and simply emits nothing.
func (s Settings) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"speed", s.Speed},
		{"angle", s.Angle},
		{"scale", s.Scale},
		{"rotation", s.Rotation},
		{"rotation_speed", s.RotationSpeed},
	}
	for _, nr := range ranges {
		if err := nr.r.validate(nr.name); err != nil {
			return err
		}
	}

	if s.Lifetime.Max < s.Lifetime.Min {
		return fmt.Errorf("%w: lifetime [%s, %s]: %w", ErrInvalidSettings, s.Lifetime.Min, s.Lifetime.Max, ErrInvertedRange)
	}
	if s.Lifetime.Min <= 0 {
		return fmt.Errorf("%w: lifetime must be positive, got %s", ErrInvalidSettings, s.Lifetime.Min)
	}
	if s.Scale.Min < 0 {
		return fmt.Errorf("%w: scale must be non-negative, got %g", ErrInvalidSettings, s.Scale.Min)
	}
	if s.MaxParticles <= 0 {
		return fmt.Errorf("%w: max_particles must be positive, got %d", ErrInvalidSettings, s.MaxParticles)
	}
	if s.BatchSize < 0 {
		return fmt.Errorf("%w: batch_size must be non-negative, got %d", ErrInvalidSettings, s.BatchSize)
	}
	if math.IsNaN(s.EmissionRate) || math.IsInf(s.EmissionRate, 0) {
		return fmt.Errorf("%w: emission_rate must be finite", ErrInvalidSettings)
	}
	return nil
}
