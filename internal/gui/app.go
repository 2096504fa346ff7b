package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/object"
	"github.com/san-kum/deskstead/internal/overlay"
	"github.com/san-kum/deskstead/internal/particle"
	"github.com/san-kum/deskstead/internal/render"
	"github.com/san-kum/deskstead/internal/render/rlrender"
	"github.com/san-kum/deskstead/internal/scene"
)

// maxSubsteps bounds physics catch-up after a stalled frame.
const maxSubsteps = 5

var (
	ColText    = rl.NewColor(235, 235, 235, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 200)
)

type Mode int

const (
	ModeParticles Mode = iota
	ModePhysics
	ModeSprite
)

func (m Mode) String() string {
	switch m {
	case ModeParticles:
		return "particles"
	case ModePhysics:
		return "physics"
	case ModeSprite:
		return "sprite"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// SpriteOptions describes the cursor-following animation of sprite mode.
type SpriteOptions struct {
	Texture string
	Size    mgl64.Vec2
	Layout  object.SheetLayout
}

type Options struct {
	Mode   Mode
	Sprite SpriteOptions
	HUD    bool
}

type App struct {
	Config   *config.Config
	Mode     Mode
	Window   *overlay.Window
	Renderer *rlrender.Renderer
	Loader   *rlrender.Loader
	Cursor   render.Pointer

	Particles *particle.System
	Physics   *scene.Physics
	Sprite    *object.Animated

	ShowHUD bool
	Time    float64
	acc     float64
}

// NewApp builds the scene for the chosen mode. The window must already be
// open since textures live on the GPU.
func NewApp(win *overlay.Window, cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		Config:   cfg,
		Mode:     opts.Mode,
		Window:   win,
		Renderer: rlrender.NewRenderer(),
		Loader:   rlrender.NewLoader(),
		Cursor:   overlay.Cursor{},
		ShowHUD:  opts.HUD,
	}

	width, height := win.Size()
	var err error
	switch opts.Mode {
	case ModeParticles:
		a.Particles, err = scene.NewParticles(cfg, a.Cursor.Position(), a.Loader)
	case ModePhysics:
		a.Physics, err = scene.NewPhysics(cfg, width, height, a.Loader)
	case ModeSprite:
		a.Sprite, err = a.newSprite(opts.Sprite)
	default:
		err = fmt.Errorf("gui: unknown mode %v", opts.Mode)
	}
	if err != nil {
		a.Loader.UnloadAll()
		return nil, err
	}
	log.Printf("Overlay: %s mode on %dx%d", opts.Mode, width, height)
	return a, nil
}

func (a *App) newSprite(opts SpriteOptions) (*object.Animated, error) {
	var tex render.Texture
	if opts.Texture != "" {
		t, err := a.Loader.Load(opts.Texture)
		if err != nil {
			log.Printf("Overlay: %v, drawing a placeholder", err)
		} else {
			tex = t
		}
	}
	sprite, err := object.NewAnimated(tex, a.Cursor.Position(), opts.Size, opts.Layout)
	if err != nil {
		return nil, err
	}
	sprite.SetLooping(true)
	sprite.Play()
	return sprite, nil
}

// Run opens the overlay and blocks until it is closed.
func Run(cfg *config.Config, opts Options) error {
	win, err := overlay.Open(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	app, err := NewApp(win, cfg, opts)
	if err != nil {
		return err
	}
	defer app.Loader.UnloadAll()
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !a.Window.ShouldClose() {
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) Update() error {
	dt := a.Window.FrameTime()
	if !(dt > 0) {
		dt = a.Config.World.Dt
	}
	a.Time += dt
	cursor := a.Cursor.Position()

	switch a.Mode {
	case ModeParticles:
		if a.Config.Particles.FollowCursor {
			a.Particles.SetPosition(cursor)
		}
		a.Particles.Update(dt)
	case ModePhysics:
		var n int
		n, a.acc = fixedSteps(a.acc+dt, a.Config.World.Dt, maxSubsteps)
		for i := 0; i < n; i++ {
			if _, err := a.Physics.Tick(a.Cursor, a.Config.World.Dt); err != nil {
				return fmt.Errorf("gui: physics: %w", err)
			}
		}
	case ModeSprite:
		a.Sprite.SetPosition(cursor)
		a.Sprite.Update(dt)
	}
	return nil
}

// fixedSteps splits accumulated time into whole steps. Time beyond max steps
// is dropped so a long stall does not spiral.
func fixedSteps(acc, step float64, max int) (int, float64) {
	n := int(acc / step)
	if n > max {
		return max, 0
	}
	return n, acc - float64(n)*step
}

func (a *App) Draw() {
	a.Window.Frame(func() {
		switch a.Mode {
		case ModeParticles:
			a.Particles.Draw(a.Renderer)
		case ModePhysics:
			a.Physics.Draw(a.Renderer)
		case ModeSprite:
			a.Sprite.Draw(a.Renderer)
		}
		if a.ShowHUD {
			a.DrawHUD()
		}
	})
}

func (a *App) DrawHUD() {
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, 20, 16, ColText)

	var line string
	switch a.Mode {
	case ModeParticles:
		line = fmt.Sprintf("%d particles, %d emitted", a.Particles.Len(), a.Particles.Emitted())
	case ModePhysics:
		line = fmt.Sprintf("%d bodies, tick %d", a.Physics.World.Len(), a.Physics.World.Ticks())
	case ModeSprite:
		line = fmt.Sprintf("frame %d", a.Sprite.Frame())
	}
	rl.DrawText(line, 20, 40, 14, ColTextDim)
}
