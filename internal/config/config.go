package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/particle"
	"github.com/san-kum/deskstead/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle    = "Deskstead"
	DefaultFPS      = 60
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0

	// Headless runs have no monitor to size against.
	FallbackWidth  = 800
	FallbackHeight = 600

	DefaultFloorInset     = 100.0
	DefaultFloorThickness = 50.0
	DefaultFloorBounce    = 0.1
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Particles ParticlesConfig `yaml:"particles"`
	World     WorldConfig     `yaml:"world"`
	Objects   []ObjectConfig  `yaml:"objects"`
	// Duration is the length of a headless run in seconds.
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

// WindowConfig sizes and flags the overlay window. A zero width or height
// means the size of the current monitor.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	FPS          int    `yaml:"fps"`
	Undecorated  bool   `yaml:"undecorated"`
	Transparent  bool   `yaml:"transparent"`
	ClickThrough bool   `yaml:"click_through"`
	Topmost      bool   `yaml:"topmost"`
	Unfocused    bool   `yaml:"unfocused"`
	VSync        bool   `yaml:"vsync"`
	MSAA         bool   `yaml:"msaa"`
	HideTaskbar  bool   `yaml:"hide_taskbar"`
}

// Size returns the configured size, or the fallback for zero dimensions.
func (w WindowConfig) Size(fallbackW, fallbackH int) (int, int) {
	width, height := w.Width, w.Height
	if width == 0 {
		width = fallbackW
	}
	if height == 0 {
		height = fallbackH
	}
	return width, height
}

// RGBA is a colour written as a four element list.
type RGBA [4]uint8

func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

type ParticlesConfig struct {
	particle.Settings `yaml:",inline"`

	Color        RGBA    `yaml:"color"`
	Texture      string  `yaml:"texture"`
	SystemScale  float64 `yaml:"system_scale"`
	FollowCursor bool    `yaml:"follow_cursor"`
}

// ParticleSettings returns the emitter settings with the configured colour.
func (p ParticlesConfig) ParticleSettings() particle.Settings {
	s := p.Settings
	s.Color = p.Color.Color()
	return s
}

type FloorConfig struct {
	Enabled bool `yaml:"enabled"`
	// Inset is the distance from the bottom edge to the floor centre.
	Inset       float64 `yaml:"inset"`
	Thickness   float64 `yaml:"thickness"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

type WorldConfig struct {
	Gravity        float64     `yaml:"gravity"`
	AirDrag        float64     `yaml:"air_drag"`
	SurfaceDamping float64     `yaml:"surface_damping"`
	Dt             float64     `yaml:"dt"`
	Floor          FloorConfig `yaml:"floor"`
}

func (w WorldConfig) Options() []physics.Option {
	return []physics.Option{
		physics.WithGravity(w.Gravity),
		physics.WithAirDrag(w.AirDrag),
		physics.WithSurfaceDamping(w.SurfaceDamping),
	}
}

type ObjectConfig struct {
	Position    mgl64.Vec2 `yaml:"position"`
	Size        mgl64.Vec2 `yaml:"size"`
	Velocity    mgl64.Vec2 `yaml:"velocity"`
	Mass        float64    `yaml:"mass"`
	Restitution float64    `yaml:"restitution"`
	Friction    float64    `yaml:"friction"`
	Fixed       bool       `yaml:"fixed"`
	Texture     string     `yaml:"texture"`
	Color       RGBA       `yaml:"color"`
}

// DefaultObject is a movable crate with the body defaults.
func DefaultObject(position mgl64.Vec2) ObjectConfig {
	return ObjectConfig{
		Position:    position,
		Size:        physics.DefaultSize,
		Mass:        physics.DefaultMass,
		Restitution: physics.DefaultRestitution,
		Friction:    physics.DefaultFriction,
		Color:       RGBA{200, 120, 60, 255},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        DefaultTitle,
			FPS:          DefaultFPS,
			Undecorated:  true,
			Transparent:  true,
			ClickThrough: true,
			Topmost:      true,
			Unfocused:    true,
			VSync:        true,
			MSAA:         true,
			HideTaskbar:  true,
		},
		Particles: ParticlesConfig{
			Settings:     particle.DefaultSettings(),
			Color:        RGBA{255, 255, 255, 255},
			SystemScale:  1,
			FollowCursor: true,
		},
		World: WorldConfig{
			Gravity:        physics.DefaultGravity,
			SurfaceDamping: physics.DefaultSurfaceDamping,
			Dt:             DefaultDt,
			Floor: FloorConfig{
				Enabled:     true,
				Inset:       DefaultFloorInset,
				Thickness:   DefaultFloorThickness,
				Restitution: DefaultFloorBounce,
				Friction:    physics.DefaultFriction,
			},
		},
		Duration: DefaultDuration,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Window.FPS)
	}

	if err := c.Particles.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: particles: %w", ErrInvalidConfig, err)
	}
	if !(c.Particles.SystemScale > 0) {
		return fmt.Errorf("%w: system_scale must be positive, got %g", ErrInvalidConfig, c.Particles.SystemScale)
	}

	w := c.World
	if !(w.Dt > 0) || math.IsInf(w.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, w.Dt)
	}
	if math.IsNaN(w.Gravity) || math.IsInf(w.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	if w.AirDrag < 0 {
		return fmt.Errorf("%w: air_drag must be non-negative, got %g", ErrInvalidConfig, w.AirDrag)
	}
	if w.SurfaceDamping < 0 || w.SurfaceDamping > 1 {
		return fmt.Errorf("%w: surface_damping must be in [0,1], got %g", ErrInvalidConfig, w.SurfaceDamping)
	}
	if w.Floor.Enabled && !(w.Floor.Thickness > 0) {
		return fmt.Errorf("%w: floor thickness must be positive, got %g", ErrInvalidConfig, w.Floor.Thickness)
	}

	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %g", ErrInvalidConfig, c.Duration)
	}

	for i, o := range c.Objects {
		if o.Size.X() <= 0 || o.Size.Y() <= 0 {
			return fmt.Errorf("%w: object %d: size %v", ErrInvalidConfig, i, o.Size)
		}
		if !o.Fixed && !(o.Mass > 0) {
			return fmt.Errorf("%w: object %d: mass must be positive, got %g", ErrInvalidConfig, i, o.Mass)
		}
		if o.Restitution < 0 || o.Restitution > 1 {
			return fmt.Errorf("%w: object %d: restitution must be in [0,1], got %g", ErrInvalidConfig, i, o.Restitution)
		}
	}
	return nil
}
