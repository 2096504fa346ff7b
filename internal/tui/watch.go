package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/particle"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/scene"
	"github.com/san-kum/deskstead/internal/viz"
)

const (
	// JumpSpeed is the upward speed in px/s the j key adds to every movable body.
	JumpSpeed = 400.0

	historyLen = 60
	maxSpeed   = 16
)

// Options picks what the preview simulates.
type Options struct {
	Title     string
	Particles bool
	// World size in pixels; zero falls back to the config window size.
	Width, Height int
}

// Model previews a scene in the terminal on a braille canvas. Ticks step the
// simulation by the configured dt, speed times per frame.
type Model struct {
	cfg  *config.Config
	opts Options

	physics   *scene.Physics
	particles *particle.System

	paused  bool
	err     error
	speed   int
	frame   int
	history []float64

	width  int
	height int
}

// New builds the initial scene.
func New(cfg *config.Config, opts Options) (Model, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = cfg.Window.Size(config.FallbackWidth, config.FallbackHeight)
	}
	m := Model{
		cfg:     cfg,
		opts:    opts,
		speed:   1,
		history: make([]float64, 0, historyLen),
		width:   80,
		height:  24,
	}
	if err := m.build(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) build() error {
	if m.opts.Particles {
		origin := mgl64.Vec2{float64(m.opts.Width) / 2, float64(m.opts.Height) / 4}
		sys, err := scene.NewParticles(m.cfg, origin, nil)
		if err != nil {
			return err
		}
		m.particles = sys
		m.physics = nil
		return nil
	}
	phys, err := scene.NewPhysics(m.cfg, m.opts.Width, m.opts.Height, nil)
	if err != nil {
		return err
	}
	m.physics = phys
	m.particles = nil
	return nil
}

func (m Model) Paused() bool                { return m.paused }
func (m Model) Speed() int                  { return m.speed }
func (m Model) Err() error                  { return m.err }
func (m Model) Physics() *scene.Physics     { return m.physics }
func (m Model) Particles() *particle.System { return m.particles }

func (m Model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.frame++
		if !m.paused && m.err == nil {
			for i := 0; i < m.speed; i++ {
				if err := m.step(); err != nil {
					m.err = err
					break
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "j":
		m.jump()
	case "r":
		if err := m.build(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.history = m.history[:0]
	case "+", "=":
		m.speed = min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	}
	return m, nil
}

func (m *Model) step() error {
	dt := m.cfg.World.Dt
	if m.particles != nil {
		m.particles.Update(dt)
		m.record(float64(m.particles.Len()))
		return nil
	}
	if _, err := m.physics.Tick(nil, dt); err != nil {
		return err
	}
	if b, ok := m.tracked(); ok {
		m.record(float64(m.opts.Height) - b.Position.Y())
	}
	return nil
}

// tracked is the first movable body, whose height feeds the sparkline.
func (m Model) tracked() (*physics.Body, bool) {
	var found *physics.Body
	m.physics.World.Each(func(_ physics.ID, e physics.Entity) bool {
		if b := e.PhysicsBody(); !b.Fixed() {
			found = b
			return false
		}
		return true
	})
	return found, found != nil
}

func (m *Model) jump() {
	if m.physics == nil {
		return
	}
	m.physics.World.Each(func(_ physics.ID, e physics.Entity) bool {
		b := e.PhysicsBody()
		b.ApplyImpulse(mgl64.Vec2{0, -JumpSpeed * b.Mass})
		return true
	})
}

func (m *Model) record(v float64) {
	if len(m.history) == historyLen {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyLen-1]
	}
	m.history = append(m.history, v)
}

func (m Model) View() string {
	var b strings.Builder

	title := m.opts.Title
	if title == "" {
		title = m.cfg.Window.Title
	}
	b.WriteString(viz.HeaderStyle.Render(title) + "\n")

	cw := max(m.width-2, 20)
	ch := max(m.height-6, 6)
	canvas := viz.NewCanvas(cw, ch)
	canvas.Viewport(float64(m.opts.Width), float64(m.opts.Height))
	if m.particles != nil {
		m.particles.Draw(canvas)
	} else {
		m.physics.Draw(canvas)
	}
	b.WriteString(canvas.String())

	b.WriteString(m.status() + "\n")
	b.WriteString(viz.Sparkline(m.history, min(cw, historyLen)) + "\n")
	b.WriteString(viz.KeyHint.Render("space pause  j jump  r reset  +/- speed  q quit"))
	return b.String()
}

func (m Model) status() string {
	var state string
	switch {
	case m.err != nil:
		state = viz.StatusError.Render("error: " + m.err.Error())
	case m.paused:
		state = viz.StatusPaused.Render("paused")
	default:
		state = viz.StatusRunning.Render(viz.Spinner(m.frame) + " running")
	}

	var t float64
	var count int
	label := "bodies"
	if m.particles != nil {
		t = m.particles.Clock().Seconds()
		count = m.particles.Len()
		label = "particles"
	} else {
		t = m.physics.World.Elapsed()
		count = m.physics.World.Len()
	}

	var progress float64
	if m.cfg.Duration > 0 {
		progress = t / m.cfg.Duration
	}
	return fmt.Sprintf("%s  %s %s  %s %s  %s %s  %s",
		state,
		viz.MetricLabel.Render("t"), viz.MetricValue.Render(fmt.Sprintf("%.2fs", t)),
		viz.MetricLabel.Render(label), viz.MetricValue.Render(fmt.Sprint(count)),
		viz.MetricLabel.Render("speed"), viz.MetricValue.Render(fmt.Sprintf("%dx", m.speed)),
		viz.ProgressBar(progress, 20),
	)
}

// Run starts the preview on the alternate screen.
func Run(cfg *config.Config, opts Options) error {
	m, err := New(cfg, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
