package config

import (
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/particle"
)

const (
	ModeParticles = "particles"
	ModePhysics   = "physics"
)

var Presets = map[string]map[string]*Config{
	ModeParticles: {
		"sparkle": withParticles(func(p *ParticlesConfig) {
			p.EmissionRate = 60
			p.Lifetime = particle.DurationRange{Min: 500 * time.Millisecond, Max: time.Second}
			p.Speed = particle.Range{Min: 20, Max: 80}
			p.Scale = particle.Range{Min: 0.2, Max: 0.6}
			p.AlphaDecay = -1.2
			p.Gravity = mgl64.Vec2{0, 30}
			p.Color = RGBA{255, 215, 0, 255}
		}),
		"snow": withParticles(func(p *ParticlesConfig) {
			p.EmissionRate = 20
			p.Lifetime = particle.DurationRange{Min: 4 * time.Second, Max: 6 * time.Second}
			p.Speed = particle.Range{Min: 10, Max: 30}
			p.Angle = particle.Range{Min: math.Pi / 3, Max: 2 * math.Pi / 3}
			p.Scale = particle.Range{Min: 0.3, Max: 0.8}
			p.RotationSpeed = particle.Range{Min: -0.5, Max: 0.5}
			p.ScaleSpeed = 0
			p.AlphaDecay = -0.2
			p.Gravity = mgl64.Vec2{0, 20}
		}),
		"fountain": withParticles(func(p *ParticlesConfig) {
			p.EmissionRate = 120
			p.Lifetime = particle.DurationRange{Min: 1500 * time.Millisecond, Max: 2500 * time.Millisecond}
			p.Speed = particle.Range{Min: 200, Max: 300}
			p.Angle = particle.Range{Min: -math.Pi/2 - 0.3, Max: -math.Pi/2 + 0.3}
			p.Scale = particle.Range{Min: 0.4, Max: 0.8}
			p.ScaleSpeed = 0
			p.Gravity = mgl64.Vec2{0, 400}
			p.Color = RGBA{120, 190, 255, 255}
			p.FollowCursor = false
		}),
	},
	ModePhysics: {
		"bounce": withObjects(func() []ObjectConfig {
			crate := DefaultObject(mgl64.Vec2{100, 50})
			crate.Mass = 100
			crate.Restitution = 0.7
			return []ObjectConfig{crate}
		}),
		"stack": withObjects(func() []ObjectConfig {
			var objs []ObjectConfig
			for i := 0; i < 3; i++ {
				x := 200 + float64(i)*200
				ledge := DefaultObject(mgl64.Vec2{x, 420 - float64(i)*80})
				ledge.Size = mgl64.Vec2{160, 20}
				ledge.Fixed = true
				ledge.Mass = 0
				ledge.Color = RGBA{130, 130, 130, 255}

				crate := DefaultObject(mgl64.Vec2{x, 40})
				crate.Mass = float64(i + 1)
				objs = append(objs, ledge, crate)
			}
			return objs
		}),
	},
}

func withParticles(fn func(*ParticlesConfig)) *Config {
	cfg := DefaultConfig()
	fn(&cfg.Particles)
	return cfg
}

func withObjects(fn func() []ObjectConfig) *Config {
	cfg := DefaultConfig()
	cfg.Objects = fn()
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	cfg, ok := modePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.Objects = append([]ObjectConfig(nil), cfg.Objects...)
	return &c
}

// ListPresets returns the preset names for a mode in sorted order.
func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modes lists the preset groups.
func Modes() []string {
	return []string{ModeParticles, ModePhysics}
}
