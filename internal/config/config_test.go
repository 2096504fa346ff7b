package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/particle"
	"github.com/san-kum/deskstead/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.World.Gravity != physics.DefaultGravity {
		t.Errorf("gravity = %v", cfg.World.Gravity)
	}
	if cfg.World.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if !cfg.World.Floor.Enabled {
		t.Error("floor should be on by default")
	}
	if cfg.Particles.MaxParticles != particle.DefaultMaxParticles {
		t.Errorf("max particles = %d", cfg.Particles.MaxParticles)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Window.Width = -1 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"inverted speed", func(c *Config) { c.Particles.Speed = particle.Range{Min: 5, Max: 1} }},
		{"zero system scale", func(c *Config) { c.Particles.SystemScale = 0 }},
		{"zero dt", func(c *Config) { c.World.Dt = 0 }},
		{"negative drag", func(c *Config) { c.World.AirDrag = -1 }},
		{"damping above one", func(c *Config) { c.World.SurfaceDamping = 1.5 }},
		{"flat floor", func(c *Config) { c.World.Floor.Thickness = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"massless crate", func(c *Config) {
			o := DefaultObject(mgl64.Vec2{})
			o.Mass = 0
			c.Objects = append(c.Objects, o)
		}},
		{"empty crate", func(c *Config) {
			o := DefaultObject(mgl64.Vec2{})
			o.Size = mgl64.Vec2{0, 1}
			c.Objects = append(c.Objects, o)
		}},
		{"bouncy crate", func(c *Config) {
			o := DefaultObject(mgl64.Vec2{})
			o.Restitution = 2
			c.Objects = append(c.Objects, o)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateAllowsMasslessFixedBody(t *testing.T) {
	cfg := DefaultConfig()
	o := DefaultObject(mgl64.Vec2{})
	o.Mass = 0
	o.Fixed = true
	cfg.Objects = []ObjectConfig{o}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fixed body rejected: %v", err)
	}
}

func TestInvertedRangeIsReachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Scale = particle.Range{Min: 2, Max: 1}
	err := cfg.Validate()
	if !errors.Is(err, particle.ErrInvertedRange) {
		t.Errorf("err = %v, want wrapped ErrInvertedRange", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskstead.yaml")
	cfg := GetPreset(ModePhysics, "bounce")
	cfg.Seed = 42
	cfg.Particles.Lifetime = particle.DurationRange{Min: 250 * time.Millisecond, Max: 3 * time.Second}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 42 || len(got.Objects) != 1 {
		t.Fatalf("seed %d objects %d", got.Seed, len(got.Objects))
	}
	if got.Objects[0] != cfg.Objects[0] {
		t.Errorf("object = %+v, want %+v", got.Objects[0], cfg.Objects[0])
	}
	if got.Particles.Lifetime != cfg.Particles.Lifetime {
		t.Errorf("lifetime = %+v", got.Particles.Lifetime)
	}
	if got.Particles.Color != cfg.Particles.Color {
		t.Errorf("color = %v", got.Particles.Color)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("world:\n  gravity: 500\nparticles:\n  emission_rate: 3\n  color: [10, 20, 30, 255]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Gravity != 500 {
		t.Errorf("gravity = %v", cfg.World.Gravity)
	}
	if cfg.World.Dt != DefaultDt {
		t.Errorf("dt = %v, want default", cfg.World.Dt)
	}
	if cfg.Particles.EmissionRate != 3 || cfg.Particles.MaxParticles != particle.DefaultMaxParticles {
		t.Errorf("particles = %+v", cfg.Particles.Settings)
	}
	if c := cfg.Particles.ParticleSettings().Color; c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("color = %v", c)
	}
}

func TestLoadWindowFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "window.yaml")
	data := []byte("window:\n  vsync: false\n  msaa: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig().Window
	want.VSync = false
	want.MSAA = false
	if cfg.Window != want {
		t.Errorf("window = %+v, want %+v", cfg.Window, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("world:\n  dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid: err = %v", err)
	}
}

func TestWindowSize(t *testing.T) {
	w := WindowConfig{Width: 1024}
	if gw, gh := w.Size(FallbackWidth, FallbackHeight); gw != 1024 || gh != FallbackHeight {
		t.Errorf("size = %dx%d", gw, gh)
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.Gravity = 10
	cfg.World.AirDrag = 0.5

	w := physics.NewWorld[physics.Entity](cfg.World.Options()...)
	s := w.Settings()
	if s.Gravity != 10 || s.AirDrag != 0.5 || s.SurfaceDamping != physics.DefaultSurfaceDamping {
		t.Errorf("settings = %+v", s)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset(ModePhysics, "bounce")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Objects[0].Mass != 100 {
		t.Errorf("expected mass 100, got %v", cfg.Objects[0].Mass)
	}

	cfg.Objects[0].Mass = 1
	if again := GetPreset(ModePhysics, "bounce"); again.Objects[0].Mass != 100 {
		t.Error("preset mutated through returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset(ModeParticles, "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "snow"); cfg != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets(ModeParticles)
	want := []string{"fountain", "snow", "sparkle"}
	if len(got) != len(want) {
		t.Fatalf("presets = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("presets = %v, want %v", got, want)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, mode := range Modes() {
		for _, name := range ListPresets(mode) {
			if err := GetPreset(mode, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", mode, name, err)
			}
		}
	}
}
